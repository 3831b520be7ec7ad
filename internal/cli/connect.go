package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/cryptox"
	"github.com/sayitbetter/journalsync/internal/syncer"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Connect prompts for a username and passphrase and enables sync for the
// session. The same credential pair always maps to the same pseudonymous
// identity, so there is no registration step: connecting from a new device
// with the same credentials reaches the same remote record.
//
// The passphrase is kept in memory for the lifetime of the session (it is
// needed to encrypt every upload) and wiped on Disconnect.
func (a *App) Connect(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	passphrase, err := getPassword("Enter passphrase: ", os.Stdout)
	if err != nil {
		return err
	}

	strength := cryptox.EvaluatePassphraseStrength(string(passphrase))
	fmt.Printf("Passphrase strength: %s\n", strength.Level)
	for _, f := range strength.Feedback {
		fmt.Println("  -", f)
	}

	confirm, err := getPassword("Confirm passphrase: ", os.Stdout)
	if err != nil {
		common.WipeByteArray(passphrase)
		return err
	}
	defer common.WipeByteArray(confirm)

	info, err := a.session().Initialize(syncer.InitParams{
		Username:          username,
		Passphrase:        string(passphrase),
		PassphraseConfirm: string(confirm),
	})
	if err != nil {
		common.WipeByteArray(passphrase)
		return err
	}

	a.wipePassphrase()
	a.passphrase = passphrase

	fmt.Printf("Connected as %s (id %s...)\n", info.Username, info.UserID[:12])
	return nil
}

// Disconnect drops the session and wipes the in-memory passphrase. Local
// entries are untouched.
func (a *App) Disconnect(ctx context.Context) error {
	a.session().Disconnect()
	a.wipePassphrase()
	fmt.Println("Disconnected.")
	return nil
}

// Status prints the session snapshot and probes the sync service.
func (a *App) Status(ctx context.Context) error {
	st := a.session().Status()
	if !st.Enabled {
		fmt.Println("Sync: disabled (use 'connect' to enable)")
		return nil
	}
	fmt.Printf("Sync: enabled\nUsername: %s\nUser ID: %s\n", st.Username, st.UserIDPreview)
	if st.SyncInProgress {
		fmt.Println("A sync cycle is currently in progress")
	}
	if a.session().HealthCheck(ctx) {
		fmt.Println("Service: reachable")
	} else {
		fmt.Println("Service: unreachable")
	}
	return nil
}

// WipeRemote deletes the remote record after re-confirming the passphrase.
// The local store is untouched.
func (a *App) WipeRemote(ctx context.Context) error {
	passphrase, err := getPassword("Re-enter passphrase to confirm: ", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	if err := a.session().DeleteRemote(ctx, string(passphrase)); err != nil {
		return err
	}
	fmt.Println("Remote record deleted.")
	return nil
}
