package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"invoicer-cli/internal/logging"
	"invoicer-cli/internal/render"
)

func newRenderCmd(app *App) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "render <invoice-id>",
		Short: "Generate the markdown and PDF documents for an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup()
			ctx := context.Background()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid invoice id %q", args[0])
			}

			s, err := app.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			inv, items, err := s.InvoiceWithItems(ctx, id)
			if err != nil {
				return fmt.Errorf("load invoice %d: %w", id, err)
			}
			project, err := s.Project(ctx, inv.ProjectID)
			if err != nil {
				return err
			}
			client, err := s.Client(ctx, project.ClientID)
			if err != nil {
				return err
			}
			profile, err := s.Profile(ctx, client.ProfileID)
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = app.cfg.InvoicesDir
			}
			gen, err := render.NewGenerator(dir)
			if err != nil {
				return err
			}
			mdPath, pdfPath, err := gen.Generate(inv, items, profile, client, project)
			if err != nil {
				return err
			}
			slog.Info("invoice documents generated",
				"invoice", inv.Number, "markdown", mdPath, "pdf", pdfPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: configured invoices_dir)")
	return cmd
}
