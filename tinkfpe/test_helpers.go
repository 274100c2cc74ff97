package tinkfpe

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var (
	keyManagerOnce       sync.Once
	registeredKeyManager *KeyManager
)

// ensureKeyManagerRegistered ensures the KeyManager is registered with Tink's registry.
// This function is safe to call multiple times - it will only register once.
func ensureKeyManagerRegistered() *KeyManager {
	keyManagerOnce.Do(func() {
		keyManager := NewKeyManager()
		// Register without checking first. If it's not registered,
		// RegisterKeyManager will succeed; if it is, it returns an error.
		if err := registry.RegisterKeyManager(keyManager); err != nil {
			// Every registration error is ignored here, not only the
			// "already registered" one.
		}
		registeredKeyManager = keyManager
	})
	return registeredKeyManager
}

// getOrRegisterKeyManager gets the KeyManager, registering it if necessary.
// This is a safer version that checks if registration is needed.
func getOrRegisterKeyManager() (*KeyManager, error) {
	keyManager := NewKeyManager()

	// Check if this type URL is already supported
	// If it is, the KeyManager is already registered
	_, err := registry.GetKeyManager(FPEKeyTypeURL)
	if err == nil {
		// Already registered, return a new instance (they're stateless)
		return keyManager, nil
	}

	// Not registered yet, so register it
	if err := registry.RegisterKeyManager(keyManager); err != nil {
		return nil, err
	}

	return keyManager, nil
}
