// Package cli wires the cobra command tree: the bare command starts the
// interactive TUI, subcommands cover scriptable invoice operations.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"invoicer-cli/internal/config"
	"invoicer-cli/internal/logging"
	"invoicer-cli/internal/mail"
	"invoicer-cli/internal/render"
	"invoicer-cli/internal/store"
	"invoicer-cli/internal/tui"
)

type App struct {
	CfgFile string
	DBPath  string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "invoicer",
		Short:        "Freelancer invoicing TUI + CLI",
		SilenceUsage: true,
		Example: `  # Start the interactive TUI
  invoicer

  # Render invoice documents without the TUI
  invoicer render 3

  # Populate a demo database
  invoicer seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.CfgFile)
		if err != nil {
			return err
		}
		if app.DBPath != "" {
			cfg.DBPath = app.DBPath
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.CfgFile, "config", "", "Config file (default: $HOME/.invoicer.yaml)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "SQLite database path (overrides config)")

	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	return cmd
}

func (app *App) openStore() (*store.Store, error) {
	return store.Open(app.cfg.DBPath)
}

func runTUI(app *App) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	gen, err := render.NewGenerator(app.cfg.InvoicesDir)
	if err != nil {
		return err
	}

	return tui.Run(s, gen, mail.NewSMTPSender(app.cfg.SMTP), tuiLogger())
}

// tuiLogger returns the TUI's debug logger. The TUI must not write to the
// terminal it is drawing on, so logs go to the INVOICER_TUI_DEBUG_LOG file
// when set and are discarded otherwise.
func tuiLogger() *slog.Logger {
	return logging.FileLogger("INVOICER_TUI_DEBUG_LOG")
}
