// Package ui provides the caddie command line.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/caddie/internal/config"
	"github.com/javiermolinar/caddie/internal/db"
	"github.com/javiermolinar/caddie/internal/llm"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
	"github.com/javiermolinar/caddie/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     teesheet.Repository
	ownsRepo bool
	config   *config.Config
	root     *cobra.Command
	debug    bool // Enable debug logging
	noColor  bool

	newClient func(provider, model, baseURL string) (llm.Client, error)
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured database path.
func NewApp(repo teesheet.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, newClient: llm.NewClient}

	a.root = &cobra.Command{
		Use:   "caddie",
		Short: "A terminal tee sheet for the front desk",
		Long: `Caddie keeps a golf course's daily tee sheet.

Book groups, check players in, assign carts and caddies, and move or
copy groups between tee times. Run without arguments to open the
interactive sheet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		// A nil repo is opened by the TUI, after its init modal if needed.
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.bookCmd())
	a.root.AddCommand(a.sheetCmd())
	a.root.AddCommand(a.placementCmd(placement.ActionMove))
	a.root.AddCommand(a.placementCmd(placement.ActionCopy))
	a.root.AddCommand(a.cancelCmd())
	a.root.AddCommand(a.checkinCmd())
	a.root.AddCommand(a.assignCmd())
	a.root.AddCommand(a.draftCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "caddie %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database unless a repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.Open(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if a.ownsRepo && a.repo != nil {
		a.ownsRepo = false
		return a.repo.Close()
	}
	return nil
}
