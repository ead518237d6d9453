package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

var (
	verbose    bool
	adapter    string
	uri        string
	key        string
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A tiny personal notes store",
	Long: `jot keeps your notes as a single JSON collection in a key-value slot:
a file, a SQLite database, an S3 bucket or a SQL table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&adapter, "adapter", "", "Storage adapter (fs, memory, sqlite, s3, mysql, postgres)")
	flags.StringVar(&uri, "uri", "", "Adapter location: directory, database file, bucket or DSN")
	flags.StringVar(&key, "key", "", "Slot key holding the collection (default "+core.DefaultKey+")")
	flags.StringVar(&configPath, "config", "", "Config file (default: nearest .jot.yaml/.jot.json)")
}

// resolveConfig merges the config file, environment and persistent flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("adapter") {
		cfg.Adapter = adapter
	}
	if flags.Changed("uri") {
		cfg.URI = uri
	}
	if flags.Changed("key") {
		cfg.Key = key
	}
	return cfg, nil
}

// openStore builds the store for a command. The returned cleanup releases
// adapter connections.
func openStore(cmd *cobra.Command) (*core.Store, core.Slot, func(), error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := slog.Default()
	if cfg.Source != "" {
		logger.Debug("config loaded", "path", cfg.Source)
	}

	opts := append(cfg.Options(), platform.WithLogger(logger))
	store, slot, err := platform.Open(commandContext(cmd), cfg.URI, opts...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Adapter, err)
	}

	cleanup := func() {
		if c, ok := slot.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				logger.Warn("failed to close slot", "error", err)
			}
		}
	}
	return store, slot, cleanup, nil
}

// commandContext returns the command's context, falling back to Background
// when the command runs outside Execute (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
