package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/sayitbetter/journalsync/internal/client"
	"github.com/sayitbetter/journalsync/internal/common"
	"github.com/sayitbetter/journalsync/internal/config"
	"github.com/sayitbetter/journalsync/internal/filex"
	"github.com/sayitbetter/journalsync/internal/logging"
	"github.com/sayitbetter/journalsync/internal/repositories/entries"
	"github.com/sayitbetter/journalsync/internal/syncer"

	_ "modernc.org/sqlite"
)

// App glues the config, local store, sync service and share client behind the
// interactive commands. The passphrase stays in memory for the session only;
// it is wiped on Disconnect and never written anywhere.
type App struct {
	config      *config.Config
	service     *syncer.Service
	repo        entries.Repository
	shareClient *client.ShareClient
	logger      logging.Logger
	reader      *bufio.Reader
	passphrase  []byte
}

// NewApp opens (creating if necessary) the local database and wires all
// services against the given configuration.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := entries.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	repo := entries.NewSQLiteRepository(db)

	httpClient := &http.Client{Timeout: c.RequestTimeout}
	syncClient := client.NewSyncClient(c.SyncBaseURL, httpClient)
	shareClient := client.NewShareClient(c.ShareBaseURL, httpClient)

	session := syncer.NewSession(syncClient, logger)
	service := syncer.NewService(session, repo, logger, syncer.DefaultTombstoneRetention)

	return &App{
		config:      c,
		service:     service,
		repo:        repo,
		shareClient: shareClient,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Say It Better journal (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) session() *syncer.Session {
	return a.service.Session()
}

func (a *App) isConnected() bool {
	return a.session().Status().Enabled
}

func (a *App) getStatus() string {
	st := a.session().Status()
	if !st.Enabled {
		return ""
	}
	s := st.Username
	if st.SyncInProgress {
		s += " syncing"
	}
	return fmt.Sprintf("(%s)", s)
}

// wipePassphrase clears the in-memory passphrase.
func (a *App) wipePassphrase() {
	common.WipeByteArray(a.passphrase)
	a.passphrase = nil
}
