package models

import "time"

// EncryptedPackage is the unit of storage and transport for a whole entry
// collection: the AES-GCM ciphertext of the JSON-serialized entries plus
// the parameters needed to re-derive the key and decrypt. Salt and IV are
// generated fresh on every encryption, never reused.
//
// Encrypted, Salt and IV are standard base64.
type EncryptedPackage struct {
	Encrypted     string `json:"encrypted"`
	Salt          string `json:"salt"`
	IV            string `json:"iv"`
	Algorithm     string `json:"algorithm"`
	KeyDerivation string `json:"keyDerivation"`
	Iterations    int    `json:"iterations"`
	Version       int    `json:"version"`
}

// SyncPayload is the POST body of the sync endpoint. Everything outside
// EncryptedData is non-sensitive bookkeeping: the server never sees
// plaintext or key material.
type SyncPayload struct {
	UserID        string           `json:"userId"`
	EncryptedData EncryptedPackage `json:"encryptedData"`
	EntryCount    int              `json:"entryCount"`
	LastModified  time.Time        `json:"lastModified"`
	Checksum      string           `json:"checksum"`
	Version       int              `json:"version"`
}

// RemoteRecord is what the sync endpoint returns for a stored user record.
type RemoteRecord struct {
	EncryptedData EncryptedPackage `json:"encryptedData"`
	EntryCount    int              `json:"entryCount"`
	LastModified  string           `json:"lastModified"`
	Checksum      string           `json:"checksum"`
	Version       int              `json:"version"`
}

// BackupFileType tags exported backup files; unknown types are rejected
// before any decryption attempt.
const BackupFileType = "sayitbetter_encrypted_backup"

// Backup is the manual export/import file format (JSON, UTF-8).
type Backup struct {
	Type          string           `json:"type"`
	Version       int              `json:"version"`
	CreatedAt     time.Time        `json:"createdAt"`
	EntryCount    int              `json:"entryCount"`
	EncryptedData EncryptedPackage `json:"encryptedData"`
	Checksum      string           `json:"checksum"`
}

// ShareEnvelope is a single entry encrypted under an ephemeral random key
// for one-off sharing. The key itself travels in the share URL fragment and
// is never sent to the server.
type ShareEnvelope struct {
	EncryptedData string `json:"encrypted_data"`
	IV            string `json:"iv"`
}

// ShareLink is the server's answer to a share upload: an opaque id with
// a server-side expiry.
type ShareLink struct {
	ShareID   string `json:"share_id"`
	ExpiresAt string `json:"expires_at"`
}
