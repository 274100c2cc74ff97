// Package tinkfpe provides Tink integration for Format-Preserving Encryption.
// This file contains the factory function for creating FPE primitives from Tink keyset handles.
package tinkfpe

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/vdparikh/fpe-ff1"
)

// New creates a new FPE primitive from a Tink keyset handle.
// This is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tweak"))
//	if err != nil {
//	    return err
//	}
//	tokenized, err := primitive.Tokenize("123-45-6789")
func New(handle *keyset.Handle, tweak []byte) (fpe.FPE, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	// Extract the primary key from the keyset using Tink's Primitives API
	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}

	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	keyID := primary.KeyID
	if keyID == 0 {
		return nil, fmt.Errorf("invalid key ID in primary entry")
	}

	// Extract the keyset using insecurecleartextkeyset (for unencrypted keysets)
	ks := insecurecleartextkeyset.KeysetMaterial(handle)

	var keyBytes []byte
	for _, key := range ks.Key {
		if key.KeyId != keyID {
			continue
		}
		keyData := key.KeyData
		if keyData == nil {
			continue
		}

		keyMaterialType := keyData.GetKeyMaterialType()
		if keyMaterialType == 1 { // ENCRYPTED = 1
			return nil, fmt.Errorf("encrypted keys via KMS are not yet fully supported - use symmetric keys")
		}
		if keyMaterialType == 2 { // SYMMETRIC = 2
			keyBytes = keyData.Value
			break
		}
	}

	if keyBytes == nil {
		return nil, fmt.Errorf("key with ID %d not found or unsupported key type", keyID)
	}

	ff1, err := fpe.NewFF1(keyBytes, tweak)
	if err != nil {
		return nil, fmt.Errorf("failed to create FF1 instance: %w", err)
	}

	return &fpeImpl{ff1: ff1}, nil
}

// fpeImpl implements the fpe.FPE interface using the fpe.FF1 implementation.
type fpeImpl struct {
	ff1 *fpe.FF1
}

// Tokenize encrypts plaintext using format-preserving encryption.
func (f *fpeImpl) Tokenize(plaintext string) (string, error) {
	return f.ff1.Tokenize(plaintext)
}

// Detokenize decrypts tokenized value using format-preserving encryption.
func (f *fpeImpl) Detokenize(tokenized string, originalPlaintext string) (string, error) {
	return f.ff1.Detokenize(tokenized, originalPlaintext, "")
}

// Verify that fpeImpl implements fpe.FPE
var _ fpe.FPE = (*fpeImpl)(nil)
