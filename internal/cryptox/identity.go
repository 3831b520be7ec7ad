package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	userIDPrefix = "user_"
	userIDSuffix = "_sayitbetter_userid_v2"
	userIDLength = 32 // hex chars of the digest, i.e. 128 bits
)

// NormalizeUsername applies the canonical username form: trimmed and
// lower-cased. The passphrase deliberately gets no such treatment.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// DeriveUserID computes the stable pseudonymous identifier that keys a
// user's remote record. The same (username, passphrase) pair yields the same
// identifier on any device, without any server-held account data, and the
// identifier cannot be inverted to recover either input.
//
// The username is normalized first; the passphrase is hashed exactly as
// given.
func DeriveUserID(username, passphrase string) string {
	input := NormalizeUsername(username) + ":" + passphrase + userIDSuffix
	hash := sha256.Sum256([]byte(input))
	return userIDPrefix + hex.EncodeToString(hash[:])[:userIDLength]
}
