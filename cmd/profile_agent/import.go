package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-profiles/internal/config"
	"github.com/jonathan/talent-profiles/internal/db"
	"github.com/jonathan/talent-profiles/internal/enrich"
	"github.com/jonathan/talent-profiles/internal/llm"
	"github.com/jonathan/talent-profiles/internal/normalize"
	"github.com/jonathan/talent-profiles/internal/observability"
	"github.com/jonathan/talent-profiles/internal/pipeline"
	"github.com/jonathan/talent-profiles/internal/sources"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run one profile aggregation end-to-end",
	Long: `Fetches every listed source, normalizes and folds the contributions into
one canonical profile, runs the AI enrichment pass and stores the result.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runImport,
}

var (
	importConfigPath  string
	importUserID      string
	importSources     []string
	importSourceKinds []string
	importAPIKey      string
	importModel       string
	importUseBrowser  bool
	importVerbose     bool
	importDatabaseURL string
	importDryRun      bool
)

func init() {
	// Config file flag (processed first)
	importCmd.Flags().StringVar(&importConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	importCmd.Flags().StringVarP(&importUserID, "user-id", "u", "", "Profile owner identity")
	importCmd.Flags().StringSliceVarP(&importSources, "source", "s", nil, "Source identifier (repeatable, parallel to --kind)")
	importCmd.Flags().StringSliceVarP(&importSourceKinds, "kind", "k", nil, "Source kind: social, career, website or document (repeatable)")
	importCmd.Flags().BoolVar(&importUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print detailed debug information")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Aggregate and print the profile without storing it")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	importCmd.Flags().StringVar(&importAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Model override for the standard tier (bio generation, image analysis)
	importCmd.Flags().StringVar(&importModel, "model", "", "Override the standard-tier Gemini model")

	// Database URL for profile persistence
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if importConfigPath != "" {
		loadedCfg, err := config.LoadConfig(importConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if importVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", importConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("user-id") {
		cfg.UserID = importUserID
	}
	if cmd.Flags().Changed("source") {
		cfg.Sources = importSources
	}
	if cmd.Flags().Changed("kind") {
		cfg.SourceKinds = importSourceKinds
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = importAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = importUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = importVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = importDatabaseURL
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 3: Validate required fields
	if cfg.UserID == "" {
		return fmt.Errorf("--user-id is required (via flag or config)")
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one --source/--kind pair is required (via flags or config)")
	}

	// Step 4: the environment supplies anything still unset
	cfg = cfg.MergeWithDefaults(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.DatabaseURL == "" && !importDryRun {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required (or pass --dry-run)")
	}

	llmCfg := llm.DefaultConfig()
	if importModel != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, importModel)
	}
	client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var store pipeline.Store
	if !importDryRun {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		store = database
	}

	registry := sources.DefaultRegistry(cfg.UseBrowser, cfg.Verbose)
	builder := pipeline.New(registry, normalize.New(client), enrich.New(client), store)
	builder.Verbose = cfg.Verbose
	builder.Printer = observability.NewPrinter(os.Stdout)

	profile, err := builder.Build(ctx, cfg.ImportRequest())
	if err != nil {
		return err
	}

	if importDryRun {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(profile)
	}

	fmt.Printf("Done! Profile %s stored with %d skills and %d portfolio items.\n",
		profile.UserID, len(profile.Skills), len(profile.PortfolioItems))
	return nil
}
