package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	clientapi "github.com/benchtop/labsync/internal/client/api"
	"github.com/benchtop/labsync/internal/client/cli"
	"github.com/benchtop/labsync/internal/client/data"
	"github.com/benchtop/labsync/internal/client/queue"
	"github.com/benchtop/labsync/internal/client/storage/boltdb"
	syncengine "github.com/benchtop/labsync/internal/client/sync"
	"github.com/benchtop/labsync/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "Server URL (overrides LABSYNC_SERVER_URL)")
	dbPath := flag.String("db", "", "Path to local database (overrides LABSYNC_CLIENT_DB)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	cfg := config.LoadClient()
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if cfg.ClientID == "" {
		cfg.ClientID = uuid.NewString()
	}

	logger := newLogger(cfg.LogLevel)
	ctx := context.Background()

	store, err := boltdb.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	q := queue.New(store, logger)
	engine := syncengine.NewEngine(store, q, clientapi.NewClient(cfg.ServerURL), logger, syncengine.Config{
		ClientID:  cfg.ClientID,
		Interval:  cfg.SyncInterval,
		BatchSize: cfg.BatchSize,
	})
	dataService := data.NewService(store, q)

	c := cli.New(dataService, engine, q)
	c.Run(ctx, args[0], args[1:])
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	// Command output goes to stdout, diagnostics to stderr.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("labsync client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
