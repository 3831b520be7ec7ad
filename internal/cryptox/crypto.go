// Package cryptox implements the client-side cryptography for zero-knowledge
// cloud sync: passphrase key derivation, authenticated encryption, the
// pseudonymous user identifier, and integrity checksums.
//
// Nothing in this package ever transmits, logs or persists a passphrase.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// SaltSize is the key-derivation salt length in bytes.
	SaltSize = 16
	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12
	// Iterations is the PBKDF2 work factor. Changing it invalidates every
	// previously encrypted package, so it is carried in package metadata.
	Iterations = 100000

	// AlgorithmName and KeyDerivationName identify the construction in
	// package metadata for future format evolution.
	AlgorithmName     = "AES-GCM"
	KeyDerivationName = "PBKDF2"
	// PackageVersion is the current encrypted package format version.
	PackageVersion = 1

	verifierSuffix = "_sayitbetter_verification"
)

// ErrDecryptFailed is returned on any AES-GCM open failure. A wrong
// passphrase and tampered ciphertext are indistinguishable here, which is
// intentional: callers must not let a prober tell the two apart.
var ErrDecryptFailed = errors.New("cannot authenticate or decrypt data")

// DeriveKey turns a passphrase and salt into an AES-256 key using
// PBKDF2-SHA256 with a deliberately expensive iteration count.
//
// The passphrase is used exactly as given. No trimming, case folding or
// unicode normalization is applied: any character difference, including
// leading or trailing whitespace, yields a different key and therefore
// fails to decrypt prior data. This is a documented contract, not an
// oversight.
func DeriveKey(passphrase string, salt []byte) []byte {
	return DeriveKeyWithIterations(passphrase, salt, Iterations)
}

// DeriveKeyWithIterations derives a key with an explicit PBKDF2 work factor.
// Decryption paths use it so packages written under an older or newer
// iteration count still yield the key they were sealed with.
func DeriveKeyWithIterations(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, KeySize, sha256.New)
}

// Encrypt seals plaintext with AES-256-GCM under the given key and nonce.
// The nonce must be NonceSize bytes, freshly random for every call, and
// never reused with the same key.
func Encrypt(plaintext, key, nonce []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens AES-256-GCM ciphertext. Any authentication failure, whether
// from a wrong key or tampered data, is reported as ErrDecryptFailed.
func Decrypt(ciphertext, key, nonce []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// MakeVerifier hashes the passphrase with a domain-separation suffix for
// in-session verification only. The verifier is never used as key material
// and never leaves the process.
func MakeVerifier(passphrase string) string {
	hash := sha256.Sum256([]byte(passphrase + verifierSuffix))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Checksum returns the short content digest carried unencrypted alongside an
// encrypted package: the first 16 characters of the base64 SHA-256 of the
// plaintext serialization. It detects post-decryption corruption without
// revealing anything about the content.
func Checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(hash[:])[:16]
}
