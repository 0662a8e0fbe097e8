// ABOUTME: Entry point for the stride CLI
// ABOUTME: Wires config, logging, store, and services into cobra commands

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stridelog/stride/internal/config"
	"github.com/stridelog/stride/internal/credentials"
	"github.com/stridelog/stride/internal/github"
	"github.com/stridelog/stride/internal/goals"
	"github.com/stridelog/stride/internal/store"
)

// version is overridden with -ldflags on release builds.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// getConfigPath returns the path to the stride config file.
// Priority: STRIDE_CONFIG env var > XDG_CONFIG_HOME/stride/config.yaml > ~/.config/stride/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("STRIDE_CONFIG"); envPath != "" {
		return envPath
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stride", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "stride", "config.yaml")
}

// app bundles everything a command needs. It is built per invocation
// and closed when the command finishes.
type app struct {
	cfg     *config.Config
	store   *store.SQLiteStore
	creds   credentials.Store
	goals   *goals.Service
	client  *github.Client
	session *github.Service
	syncer  *github.Syncer
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// loadApp loads config, configures logging, and opens the database.
// A database that cannot be opened or migrated is fatal: the returned
// error aborts the command.
func loadApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	setupLogging(cfg.Logging)

	s, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening data store: %w", err)
	}

	creds := newCredentialStore(cfg.Credentials)
	client := github.NewClient()
	session := github.NewService(github.Options{
		ClientID:     cfg.GitHub.ClientID,
		ClientSecret: cfg.GitHub.ClientSecret,
		RedirectURI:  cfg.GitHub.RedirectURI,
		Scopes:       cfg.GitHub.Scopes,
	}, creds, client)

	return &app{
		cfg:     cfg,
		store:   s,
		creds:   creds,
		goals:   goals.New(s),
		client:  client,
		session: session,
		syncer:  github.NewSyncer(client, creds, s),
	}, nil
}

// loadConfig reads the config file, falling back to defaults when no
// file exists yet.
func loadConfig() (*config.Config, error) {
	path := getConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func newCredentialStore(cfg config.CredentialsConfig) credentials.Store {
	if cfg.Backend == "memory" {
		return credentials.NewMemory()
	}
	return credentials.NewKeyring(cfg.Service)
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var output io.Writer = os.Stderr
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stride",
		Short:         "Track reading, training, and programming goals",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGoalCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newTrainCmd())
	root.AddCommand(newRepoCmd())
	root.AddCommand(newAuthCmd())
	return root
}
