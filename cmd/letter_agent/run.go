package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brian/letter-agent/internal/config"
	"github.com/brian/letter-agent/internal/directory"
	"github.com/brian/letter-agent/internal/llm"
	"github.com/brian/letter-agent/internal/observability"
	"github.com/brian/letter-agent/internal/personalize"
	"github.com/brian/letter-agent/internal/pipeline"
	"github.com/brian/letter-agent/internal/review"
	"github.com/brian/letter-agent/internal/session"
	"github.com/brian/letter-agent/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full letter generation pipeline end-to-end",
	Long: `Orchestrates the entire letter generation process: directory -> articles -> issue brief -> base letter -> per-recipient personalization -> review -> assembly.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runArticles     []string
	runRecipientsPath   string
	runSelect       string
	runOfficePref   string
	runTone         string
	runFocus        string
	runVoiceProfile string
	runOutputDir    string
	runAPIKey       string
	runDatabaseURL  string
	runUseBrowser   bool
	runAcceptAll    bool
	runVerbose      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringSliceVarP(&runArticles, "article", "a", nil, "News article URL (repeatable)")
	runCommand.Flags().StringVarP(&runRecipientsPath, "recipients-file", "r", "", "Path to recipients JSON directory")
	runCommand.Flags().StringVar(&runSelect, "select", "all", "Recipient selector: all, federal, state, local-office, dc-office, or a comma-separated ID list")
	runCommand.Flags().StringVar(&runOfficePref, "office-pref", "default", "Mailing office preference: default, local, or dc")
	runCommand.Flags().StringVar(&runTone, "tone", "", "Letter tone: professional, concerned, urgent, supportive")
	runCommand.Flags().StringVar(&runFocus, "focus", "", "Focus angle for the letter")
	runCommand.Flags().StringVar(&runVoiceProfile, "voice-profile", "", "Persona description used when drafting")
	runCommand.Flags().StringVarP(&runOutputDir, "out", "o", "", "Output directory for generated artifacts")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for JS-rendered articles (requires Chrome)")
	runCommand.Flags().BoolVarP(&runAcceptAll, "yes", "y", false, "Accept every variant without interactive review")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for session persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var; file store used when unset)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	// Validate required fields after merging
	if len(cfg.Articles) == 0 {
		return fmt.Errorf("at least one --article URL must be provided (via flag or config)")
	}
	if cfg.RecipientsPath == "" {
		return fmt.Errorf("--recipients-file is required (via flag or config)")
	}
	if cfg.Sender == (types.Sender{}) {
		return fmt.Errorf("a sender block is required (via config file)")
	}

	// API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stdout)
	runner := pipeline.NewRunner(client, store, printer)
	runner.Editor = &review.ExecEditor{}
	if !runAcceptAll {
		prompter := newConsolePrompter(os.Stdin, os.Stdout, printer)
		runner.Prompter = prompter
		runner.StyleRetry = prompter.StyleRetry
	}

	_, err = runner.Run(ctx, pipeline.RunOptions{
		Articles:       cfg.Articles,
		RecipientsPath: cfg.RecipientsPath,
		CSVPath:        csvFallbackPath(cfg.RecipientsPath),
		Selector:       directory.Selector(cfg.Select),
		OfficePref:     personalize.OfficePreference(cfg.OfficePref),
		Style: types.StyleConfig{
			Tone:         types.Tone(cfg.Tone),
			Focus:        cfg.Focus,
			VoiceProfile: cfg.VoiceProfile,
		},
		Sender:     cfg.Sender,
		OutputDir:  cfg.OutputDir,
		AcceptAll:  runAcceptAll,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	return err
}

// loadRunConfig loads the optional config file and applies CLI overrides;
// command-line args take priority over config values.
func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if runVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	if cmd.Flags().Changed("article") {
		cfg.Articles = runArticles
	}
	if cmd.Flags().Changed("recipients-file") {
		cfg.RecipientsPath = runRecipientsPath
	}
	if cmd.Flags().Changed("select") {
		cfg.Select = runSelect
	}
	if cmd.Flags().Changed("office-pref") {
		cfg.OfficePref = runOfficePref
	}
	if cmd.Flags().Changed("tone") {
		cfg.Tone = runTone
	}
	if cmd.Flags().Changed("focus") {
		cfg.Focus = runFocus
	}
	if cmd.Flags().Changed("voice-profile") {
		cfg.VoiceProfile = runVoiceProfile
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		OutputDir:  "letters",
		Select:     string(directory.SelectAll),
		OfficePref: string(personalize.PreferDefault),
	})
	return cfg, nil
}

// openStore picks PostgreSQL when a database URL is available, otherwise a
// file store next to the output directory.
func openStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL != "" {
		store, err := session.ConnectPG(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store, store.Close, nil
	}

	store, err := session.NewFileStore(sessionDir(cfg.OutputDir))
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}
