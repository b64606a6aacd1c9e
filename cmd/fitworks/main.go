package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fitforworks/cmd/fitworks/app"
	"fitforworks/internal/analysis"
	"fitforworks/internal/auth"
	"fitforworks/internal/config"
	"fitforworks/internal/logging"
	"fitforworks/internal/nav"
)

var version = "1.0.0"

var (
	// Global flags
	verbose      bool
	openFragment string

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd launches the interactive client by default
var rootCmd = &cobra.Command{
	Use:   "fitworks",
	Short: "FitForWorks - free AI resume review and job matching",
	Long: `FitForWorks analyzes your resume against ATS screening systems and
matches it to job descriptions, right from your terminal.

Run without arguments to start the interactive client. Use --open to jump
straight to a screen, e.g.:

  fitworks --open '#dashboard'`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive client has its own UI; skip the console logger.
		if cmd.Use == "fitworks" && cmd.CalledAs() == "fitworks" {
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fitworks version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fitworks %s\n", version)
	},
}

func runInteractive() error {
	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logging.Initialize(dir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logging.CloseAll()
	logging.Boot("fitworks %s starting, fragment=%q", version, openFragment)

	provider := auth.NewHTTPProvider(cfg.Auth.ProviderURL, cfg.Auth.AnonKey, dir)
	session := auth.NewManager(provider)
	defer session.Close()

	controller := nav.NewController(session, nav.NewStateStore(dir))

	model := app.New(app.Deps{
		Config:   cfg,
		Session:  session,
		Provider: provider,
		Nav:      controller,
		Client:   analysis.NewClient(cfg),
		Fragment: openFragment,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive client failed: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVar(&openFragment, "open", "", "Screen fragment to open at startup (e.g. '#dashboard')")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(matchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
