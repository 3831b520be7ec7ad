package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/sayitbetter/journalsync/internal/buildinfo"
	"github.com/sayitbetter/journalsync/internal/cli"
	"github.com/sayitbetter/journalsync/internal/config"
	"github.com/sayitbetter/journalsync/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
