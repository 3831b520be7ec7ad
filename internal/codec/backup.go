package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sayitbetter/journalsync/internal/models"
)

// ErrInvalidBackupType is returned when an import file does not carry the
// expected file-type tag. Checked before any decryption attempt.
var ErrInvalidBackupType = errors.New("not a journal backup file")

// CorruptedBackupError reports a checksum mismatch on backup import.
// Unlike the live sync path, this is fatal: there is no server copy to
// fall back to, so corrupted content must never be restored silently.
type CorruptedBackupError struct {
	Expected string
	Actual   string
}

func (e *CorruptedBackupError) Error() string {
	return "backup file is corrupted (checksum mismatch)"
}

// ExportBackup wraps an encrypted package of the given entries in the
// downloadable backup file format.
func ExportBackup(entries []models.Entry, passphrase string) ([]byte, error) {
	pkg, checksum, err := Package(entries, passphrase)
	if err != nil {
		return nil, err
	}

	backup := models.Backup{
		Type:          models.BackupFileType,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
		EntryCount:    len(entries),
		EncryptedData: *pkg,
		Checksum:      checksum,
	}
	return json.MarshalIndent(backup, "", "  ")
}

// ImportBackup validates a backup file's type tag, decrypts its contents
// and verifies the checksum. Decryption failure yields *DecryptionError;
// a checksum mismatch yields *CorruptedBackupError even though decryption
// itself succeeded.
func ImportBackup(data []byte, passphrase string) ([]models.Entry, *models.Backup, error) {
	var backup models.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, nil, fmt.Errorf("parsing backup file: %w", err)
	}
	if backup.Type != models.BackupFileType {
		return nil, nil, ErrInvalidBackupType
	}

	entries, checksum, err := Unpackage(&backup.EncryptedData, passphrase)
	if err != nil {
		return nil, nil, err
	}
	if checksum != backup.Checksum {
		return nil, nil, &CorruptedBackupError{Expected: backup.Checksum, Actual: checksum}
	}
	return entries, &backup, nil
}
