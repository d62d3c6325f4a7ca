package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"invoicer-cli/internal/logging"
	"invoicer-cli/internal/model"
)

// newSeedCmd populates the database with a small demo dataset so the TUI has
// something to show on first run.
func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo data (profile, client, project, invoice)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup()
			ctx := context.Background()

			s, err := app.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			address := "12 Harbor St, Portland, OR"
			profileID, err := s.InsertProfile(ctx, model.Profile{
				Name:          "Jane Doe",
				Email:         "jane@freelance.test",
				Phone:         "555-0100",
				Address:       &address,
				BankName:      "First Bank",
				BankAccount:   "12345678",
				RoutingNumber: "021000021",
			})
			if err != nil {
				return err
			}

			clientID, err := s.InsertClient(ctx, model.Client{
				ProfileID: profileID,
				Name:      "Acme Corp",
				Email:     "accounts@acme.test",
				Phone:     "555-0199",
			})
			if err != nil {
				return err
			}

			projectID, err := s.InsertProject(ctx, model.Project{
				ClientID:  clientID,
				Name:      "Website Redesign",
				StartDate: model.Today().AddDays(-30),
			})
			if err != nil {
				return err
			}

			number, err := s.NextInvoiceNumber(ctx, projectID)
			if err != nil {
				return err
			}
			invoiceID, err := s.SaveInvoice(ctx, model.Invoice{
				ProjectID:  projectID,
				Number:     number,
				SubmitDate: model.Today(),
				DueDate:    model.Today().AddDays(5),
				Rate:       85,
				Status:     "Draft",
			}, []model.LineItem{
				{Description: "Information architecture", Hours: 6},
				{Description: "Homepage design", Hours: 12.5},
				{Description: "Design review call", Hours: 1.5},
			})
			if err != nil {
				return err
			}

			slog.Info("demo data inserted",
				"profile", profileID, "client", clientID,
				"project", projectID, "invoice", invoiceID)
			return nil
		},
	}
}
