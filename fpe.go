// Package fpe implements Format-Preserving Encryption (FPE) using the FF1
// algorithm. FF1 is a NIST-standardized format-preserving encryption
// algorithm (NIST SP 800-38G) that encrypts a numeral string into another
// numeral string of the same length and radix.
//
// This package provides a clean, provider-agnostic implementation of FF1
// that can be used with any key management system. It preserves the
// format of input data (e.g., SSN format XXX-XX-XXXX, credit card
// numbers, email addresses) while encrypting the actual data characters.
//
// The package includes both a string-oriented Tokenize/Detokenize API and
// a Tink-compatible primitive interface (see tink.go); the underlying
// arithmetic lives in the subtle and numeral packages.
//
// Example usage:
//
//	key := []byte("your-encryption-key-32-bytes-long!")
//	tweak := []byte("tenant-1234|customer.ssn")
//
//	fpe, err := fpe.NewFF1(key, tweak)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Tokenize (encrypt) while preserving format
//	tokenized, err := fpe.Tokenize("123-45-6789")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// tokenized might be "987-65-4321" (same format, different data)
//
//	// Detokenize (decrypt) to recover original
//	plaintext, err := fpe.Detokenize(tokenized, "123-45-6789", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// plaintext will be "123-45-6789"
package fpe

import (
	"crypto/aes"
	"fmt"

	"github.com/vdparikh/fpe-ff1/numeral"
	"github.com/vdparikh/fpe-ff1/subtle"
)

// FF1 implements Format-Preserving Encryption using the FF1 algorithm.
// The radix is not fixed at construction time: Tokenize/Detokenize derive
// it per call from the alphabet needed for the given plaintext, then build
// a subtle.Engine for that radix.
type FF1 struct {
	key    []byte
	tweak  []byte
	rounds uint8
}

// NewFF1 creates a new FF1 FPE instance with the given key and tweak,
// using the NIST-mandated 10 Feistel rounds. The key should be 16, 24, or
// 32 bytes (AES-128/192/256). The tweak is a public, non-secret value
// that ensures different ciphertexts for the same plaintext when the
// tweak changes.
func NewFF1(key, tweak []byte) (*FF1, error) {
	return NewFF1WithRounds(key, tweak, subtle.DefaultRounds)
}

// NewFF1WithRounds is NewFF1 with an explicit Feistel round count. NIST
// SP 800-38G mandates 10; see subtle.NewWithRounds for when a different
// count is appropriate.
func NewFF1WithRounds(key, tweak []byte, rounds uint8) (*FF1, error) {
	if _, err := aes.NewCipher(key); err != nil {
		return nil, fmt.Errorf("fpe: invalid key: %w", err)
	}
	return &FF1{key: key, tweak: tweak, rounds: rounds}, nil
}

// engine builds the subtle.Engine for a given radix. AES keys are cheap
// to schedule and the radix varies per call (it depends on the alphabet
// the plaintext needs), so this is not cached across calls.
func (f *FF1) engine(radix uint32) (*subtle.Engine, error) {
	block, err := aes.NewCipher(f.key)
	if err != nil {
		return nil, fmt.Errorf("fpe: invalid key: %w", err)
	}
	return subtle.NewWithRounds(block, radix, f.rounds)
}

// Tokenize encrypts plaintext using format-preserving encryption.
// It preserves format characters (hyphens, dots, colons, @ signs, etc.)
// and only encrypts the alphanumeric data characters.
//
// Returns the tokenized (encrypted) value that maintains the same format
// as the input.
func (f *FF1) Tokenize(plaintext string) (string, error) {
	formatMask, dataChars := SeparateFormatAndData(plaintext)
	if dataChars == "" {
		return plaintext, nil
	}

	alphabet := DetermineAlphabet(dataChars)
	if len(alphabet) == 0 {
		return "", fmt.Errorf("fpe: no valid alphabet found for plaintext")
	}

	dataNumeric := StringToNumeric(dataChars, alphabet)
	ns := numeral.NewFlexibleNumeralString(dataNumeric, uint32(len(alphabet)))

	engine, err := f.engine(uint32(len(alphabet)))
	if err != nil {
		return "", fmt.Errorf("fpe: failed to tokenize: %w", err)
	}
	encrypted, err := engine.Encrypt(f.tweak, ns)
	if err != nil {
		return "", fmt.Errorf("fpe: failed to tokenize: %w", err)
	}

	tokenizedNumeric := encrypted.(*numeral.FlexibleNumeralString).Digits()
	tokenizedData := NumericToString(tokenizedNumeric, alphabet, len(dataChars))
	return ReconstructWithFormat(tokenizedData, formatMask, plaintext), nil
}

// Detokenize decrypts a tokenized value using format-preserving
// encryption. The alphabet parameter should match what was used during
// tokenization. If empty, it is determined from originalPlaintext (or,
// failing that, from the tokenized data itself, which may not match the
// original alphabet for mixed-format inputs).
func (f *FF1) Detokenize(tokenized string, originalPlaintext string, alphabet string) (string, error) {
	formatMask, dataChars := SeparateFormatAndData(tokenized)
	if dataChars == "" {
		return tokenized, nil
	}

	if alphabet == "" {
		if originalPlaintext != "" {
			_, originalDataChars := SeparateFormatAndData(originalPlaintext)
			alphabet = DetermineAlphabet(originalDataChars)
		} else {
			alphabet = DetermineAlphabet(dataChars)
		}
	}
	if len(alphabet) == 0 {
		return "", fmt.Errorf("fpe: no valid alphabet found")
	}

	tokenizedNumeric := StringToNumeric(dataChars, alphabet)
	ns := numeral.NewFlexibleNumeralString(tokenizedNumeric, uint32(len(alphabet)))

	engine, err := f.engine(uint32(len(alphabet)))
	if err != nil {
		return "", fmt.Errorf("fpe: failed to detokenize: %w", err)
	}
	decrypted, err := engine.Decrypt(f.tweak, ns)
	if err != nil {
		return "", fmt.Errorf("fpe: failed to detokenize: %w", err)
	}

	plaintextNumeric := decrypted.(*numeral.FlexibleNumeralString).Digits()
	plaintextData := NumericToString(plaintextNumeric, alphabet, len(dataChars))
	return ReconstructWithFormat(plaintextData, formatMask, tokenized), nil
}
