package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sayitbetter/journalsync/internal/cryptox"
	"github.com/sayitbetter/journalsync/internal/models"
)

// Share encrypts a single entry under a fresh random key, uploads the
// ciphertext, and prints a link carrying the key in the URL fragment. The
// fragment never reaches the server, so the link is the only way to read
// the entry.
func (a *App) Share(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to share", os.Stdout)
	if err != nil {
		return err
	}

	entry, err := a.repo.GetByID(ctx, models.EntryID(id))
	if err != nil {
		return err
	}
	if entry.Deleted {
		return fmt.Errorf("entry %s is deleted", id)
	}

	key := cryptox.NewShareKey()
	encrypted, iv, err := cryptox.EncryptShare(entry, key)
	if err != nil {
		return err
	}

	link, err := a.shareClient.CreateShare(ctx, &models.ShareEnvelope{
		EncryptedData: encrypted,
		IV:            iv,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Share link: %s/share/%s#%s\n",
		strings.TrimRight(a.config.ShareBaseURL, "/"), link.ShareID, cryptox.ExportShareKey(key))
	if link.ExpiresAt != "" {
		fmt.Println("Expires at:", link.ExpiresAt)
	}
	return nil
}

// FetchShare downloads and decrypts a shared entry given its id and key
// (the fragment part of the link).
func (a *App) FetchShare(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter share id", os.Stdout)
	if err != nil {
		return err
	}
	keyText, err := getSimpleText(a.reader, "Enter share key (the part after #)", os.Stdout)
	if err != nil {
		return err
	}

	key, err := cryptox.ImportShareKey(keyText)
	if err != nil {
		return err
	}

	env, err := a.shareClient.GetShare(ctx, id)
	if err != nil {
		return err
	}

	var entry models.Entry
	if err := cryptox.DecryptShare(env.EncryptedData, env.IV, key, &entry); err != nil {
		return err
	}

	fmt.Printf("Shared entry from %s:\n", entry.Date)
	if entry.ShareReady != "" {
		fmt.Println(entry.ShareReady)
	} else if entry.Summary != "" {
		fmt.Println(entry.Summary)
	} else {
		fmt.Println(entry.RawInput)
	}
	return nil
}
