package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sayitbetter/journalsync/internal/codec"
	"github.com/sayitbetter/journalsync/internal/common"
)

// backupPassphrase returns the passphrase to use for backup files: the
// session passphrase when connected, otherwise an interactive prompt.
// The second return value tells the caller whether to wipe the result.
func (a *App) backupPassphrase() ([]byte, bool, error) {
	if a.passphrase != nil {
		return a.passphrase, false, nil
	}
	pw, err := getPassword("Enter backup passphrase: ", os.Stdout)
	if err != nil {
		return nil, false, err
	}
	return pw, true, nil
}

// Export writes all entries (tombstones included) to an encrypted backup
// file. The file is useless without the passphrase.
func (a *App) Export(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter backup file path", os.Stdout)
	if err != nil {
		return err
	}

	passphrase, wipe, err := a.backupPassphrase()
	if err != nil {
		return err
	}
	if wipe {
		defer common.WipeByteArray(passphrase)
	}

	items, err := a.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	data, err := codec.ExportBackup(items, string(passphrase))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	fmt.Printf("Exported %d entries to %s\n", len(items), path)
	return nil
}

// Import restores entries from an encrypted backup file and merges them with
// the local store by last-write-wins. A checksum mismatch aborts the import
// before anything is written.
func (a *App) Import(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter backup file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	passphrase, wipe, err := a.backupPassphrase()
	if err != nil {
		return err
	}
	if wipe {
		defer common.WipeByteArray(passphrase)
	}

	restored, backup, err := codec.ImportBackup(data, string(passphrase))
	if err != nil {
		return err
	}

	count, err := a.service.ImportEntries(ctx, restored)
	if err != nil {
		return err
	}
	fmt.Printf("Imported backup from %s: %d entries restored, %d after merge\n",
		backup.CreatedAt.Format("2006-01-02"), len(restored), count)
	return nil
}
