package cryptox

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/sayitbetter/journalsync/internal/common"
)

// Share encryption is the lighter sibling of the passphrase-derived path:
// a random one-off AES-256 key protects a single entry, the key travels in
// the share URL fragment, and the server only ever stores ciphertext.

// NewShareKey generates a random AES-256 key for one-time sharing.
func NewShareKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// ExportShareKey encodes a share key as unpadded URL-safe base64, the form
// embedded in a share link fragment.
func ExportShareKey(key []byte) string {
	return base64.RawURLEncoding.EncodeToString(key)
}

// ImportShareKey decodes a share key from a link fragment. Padded input is
// accepted for robustness against URL mangling.
func ImportShareKey(s string) ([]byte, error) {
	trimmed := s
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '=' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	key, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("malformed share key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("share key must be %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}

// EncryptShare seals v (JSON-serialized) under a share key with a fresh
// nonce, returning the transport form: standard base64 ciphertext and IV.
func EncryptShare(v any, key []byte) (encrypted, iv string, err error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", "", err
	}
	nonce := common.GenerateRandByteArray(NonceSize)
	ciphertext, err := Encrypt(plaintext, key, nonce)
	if err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(nonce), nil
}

// DecryptShare opens a shared payload and unmarshals it into v.
func DecryptShare(encrypted, iv string, key []byte, v any) error {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return fmt.Errorf("malformed share payload: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return fmt.Errorf("malformed share iv: %w", err)
	}
	plaintext, err := Decrypt(ciphertext, key, nonce)
	if err != nil {
		return err
	}
	return json.Unmarshal(plaintext, v)
}
