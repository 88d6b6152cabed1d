package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brian/letter-agent/internal/config"
	"github.com/brian/letter-agent/internal/directory"
	"github.com/brian/letter-agent/internal/observability"
	"github.com/brian/letter-agent/internal/personalize"
	"github.com/brian/letter-agent/internal/pipeline"
	"github.com/brian/letter-agent/internal/session"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Re-assemble artifacts from a saved session",
	Long:  "Load a saved session snapshot and regenerate its output artifacts. Without --session the most recent snapshot is used.",
	RunE:  runResume,
}

var (
	resumeConfigPath string
	resumeSessionID  string
	resumeOutputDir  string
)

func init() {
	resumeCmd.Flags().StringVar(&resumeConfigPath, "config", "", "Path to config.json file")
	resumeCmd.Flags().StringVar(&resumeSessionID, "session", "", "Session ID to resume (defaults to the most recent)")
	resumeCmd.Flags().StringVarP(&resumeOutputDir, "out", "o", "", "Output directory for regenerated artifacts")

	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if resumeConfigPath != "" {
		loaded, err := config.LoadConfig(resumeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = resumeOutputDir
	}
	cfg = cfg.MergeWithDefaults(config.Config{OutputDir: "letters"})
	if cfg.RecipientsPath == "" {
		return fmt.Errorf("--recipients-file is required via config to rebuild mailing addresses")
	}

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	id := resumeSessionID
	if id == "" {
		fileStore, ok := store.(*session.FileStore)
		if !ok {
			return fmt.Errorf("--session is required when using database persistence")
		}
		id, err = fileStore.Latest()
		if err != nil {
			return err
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	runner := pipeline.NewRunner(nil, store, printer)

	_, err = runner.Resume(ctx, id, pipeline.RunOptions{
		RecipientsPath: cfg.RecipientsPath,
		CSVPath:        csvFallbackPath(cfg.RecipientsPath),
		Selector:       directory.SelectAll,
		OfficePref:     personalize.PreferDefault,
		Sender:         cfg.Sender,
		OutputDir:      cfg.OutputDir,
	})
	return err
}
