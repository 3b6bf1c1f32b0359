package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// rootCmd assembles the augmenta command tree.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "augmenta [sub-command]",
		Short: "Image data augmentation pipelines",
		Long: `augmenta builds probabilistic augmentation graphs from a YAML
description and runs them over annotated image datasets, producing
augmented samples with their annotations kept in sync.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}
	cmd.PersistentFlags().String("loglevel", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("logformat", "text", "log format (text, json)")

	cmd.AddCommand(runCmd(), importCmd(), inspectCmd(), versionCmd())

	return cmd
}

// buildLogger constructs the slog logger the persistent flags describe.
func buildLogger(cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	switch v := cmd.Flag("loglevel").Value.String(); v {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", v)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch v := cmd.Flag("logformat").Value.String(); v {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", v)
	}

	return slog.New(handler), nil
}
