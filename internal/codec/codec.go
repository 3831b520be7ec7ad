// Package codec packages entry collections into the EncryptedPackage wire
// format and back: canonical JSON serialization, passphrase-derived
// AES-GCM encryption, and a plaintext content checksum carried alongside
// the ciphertext.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/cryptox"
	"github.com/sayitbetter/journalsync/internal/models"
)

// ErrUnsupportedPackage is returned when a package's algorithm metadata
// names a construction this client does not implement.
var ErrUnsupportedPackage = errors.New("unsupported encrypted package format")

// DecryptionError reports an authenticated-decryption failure. Wrong
// passphrase and corrupted ciphertext are indistinguishable by design; the
// error carries only non-sensitive diagnostics (never passphrase content).
type DecryptionError struct {
	PassphraseLen int
}

func (e *DecryptionError) Error() string {
	return "wrong passphrase or corrupted data"
}

func (e *DecryptionError) Unwrap() error { return cryptox.ErrDecryptFailed }

// Package serializes entries to canonical JSON, encrypts them under a key
// derived from the passphrase, and returns the package together with the
// plaintext checksum that travels unencrypted next to it.
//
// A fresh salt and IV are generated on every call, even for identical
// input: packages are whole-blob replacements, never diffed.
func Package(entries []models.Entry, passphrase string) (*models.EncryptedPackage, string, error) {
	plaintext, err := json.Marshal(entries)
	if err != nil {
		return nil, "", fmt.Errorf("serializing entries: %w", err)
	}

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	nonce := common.GenerateRandByteArray(cryptox.NonceSize)
	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	ciphertext, err := cryptox.Encrypt(plaintext, key, nonce)
	if err != nil {
		return nil, "", fmt.Errorf("encrypting entries: %w", err)
	}

	pkg := &models.EncryptedPackage{
		Encrypted:     base64.StdEncoding.EncodeToString(ciphertext),
		Salt:          base64.StdEncoding.EncodeToString(salt),
		IV:            base64.StdEncoding.EncodeToString(nonce),
		Algorithm:     cryptox.AlgorithmName,
		KeyDerivation: cryptox.KeyDerivationName,
		Iterations:    cryptox.Iterations,
		Version:       cryptox.PackageVersion,
	}
	return pkg, cryptox.Checksum(plaintext), nil
}

// Unpackage decrypts a package and returns the entries together with the
// checksum recomputed over the decrypted plaintext. Decryption failure is
// fatal and returns *DecryptionError; comparing the returned checksum with
// the one stored next to the package is the caller's decision — a warning
// on the live sync path, fatal on backup import.
func Unpackage(pkg *models.EncryptedPackage, passphrase string) (entries []models.Entry, checksum string, err error) {
	if pkg.Algorithm != cryptox.AlgorithmName || pkg.KeyDerivation != cryptox.KeyDerivationName {
		return nil, "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPackage, pkg.Algorithm, pkg.KeyDerivation)
	}
	if pkg.Version > cryptox.PackageVersion {
		return nil, "", fmt.Errorf("%w: version %d", ErrUnsupportedPackage, pkg.Version)
	}
	if pkg.Iterations <= 0 {
		return nil, "", fmt.Errorf("%w: iterations %d", ErrUnsupportedPackage, pkg.Iterations)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(pkg.Encrypted)
	if err != nil {
		return nil, "", fmt.Errorf("malformed ciphertext encoding: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(pkg.Salt)
	if err != nil {
		return nil, "", fmt.Errorf("malformed salt encoding: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(pkg.IV)
	if err != nil {
		return nil, "", fmt.Errorf("malformed iv encoding: %w", err)
	}

	// The key is derived with the work factor the package was sealed under,
	// not the current default, so older packages survive an Iterations bump.
	key := cryptox.DeriveKeyWithIterations(passphrase, salt, pkg.Iterations)
	defer common.WipeByteArray(key)

	plaintext, err := cryptox.Decrypt(ciphertext, key, nonce)
	if err != nil {
		return nil, "", &DecryptionError{PassphraseLen: len(passphrase)}
	}

	if err := json.Unmarshal(plaintext, &entries); err != nil {
		return nil, "", fmt.Errorf("decoding decrypted entries: %w", err)
	}

	return entries, cryptox.Checksum(plaintext), nil
}
