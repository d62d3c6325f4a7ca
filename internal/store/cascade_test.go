package store

import (
	"context"
	"testing"
	"time"

	"invoicer-cli/internal/model"
)

// seedTree builds a profile with nClients clients, each with nProjects
// projects, each with nInvoices invoices, each with nItems line items.
func seedTree(t *testing.T, s *Store, nClients, nProjects, nInvoices, nItems int) int64 {
	t.Helper()
	ctx := context.Background()

	profileID, err := s.InsertProfile(ctx, model.Profile{
		Name: "Acme", Phone: "555-0100", Email: "me@acme.dev",
		BankName: "First Bank", BankAccount: "12345678", RoutingNumber: "021000021",
	})
	if err != nil {
		t.Fatalf("InsertProfile: %v", err)
	}

	for c := 0; c < nClients; c++ {
		clientID, err := s.InsertClient(ctx, model.Client{
			ProfileID: profileID, Name: "Client", Phone: "555", Email: "c@x.com",
		})
		if err != nil {
			t.Fatalf("InsertClient: %v", err)
		}
		for p := 0; p < nProjects; p++ {
			projectID, err := s.InsertProject(ctx, model.Project{
				ClientID: clientID, Name: "Project", StartDate: model.NewDate(2024, time.January, 1),
			})
			if err != nil {
				t.Fatalf("InsertProject: %v", err)
			}
			for i := 0; i < nInvoices; i++ {
				items := make([]model.LineItem, nItems)
				for l := range items {
					items[l] = model.LineItem{Description: "Work", Hours: 1.5}
				}
				inv := model.Invoice{
					ProjectID:  projectID,
					Number:     int64(i + 1),
					SubmitDate: model.NewDate(2024, time.February, 1),
					DueDate:    model.NewDate(2024, time.February, 10),
					Rate:       50.0,
					Status:     "Draft",
				}
				if _, err := s.SaveInvoice(ctx, inv, items); err != nil {
					t.Fatalf("SaveInvoice: %v", err)
				}
			}
		}
	}
	return profileID
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestDeleteProfileCascades(t *testing.T) {
	s := newTestStore(t)
	profileID := seedTree(t, s, 2, 3, 2, 4)

	if got := countRows(t, s, "line_items"); got != 2*3*2*4 {
		t.Fatalf("seed: line_items = %d", got)
	}

	if err := s.DeleteProfile(context.Background(), profileID); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}

	for _, table := range []string{"line_items", "invoices", "projects", "clients", "profiles"} {
		if got := countRows(t, s, table); got != 0 {
			t.Errorf("residual rows in %s: %d", table, got)
		}
	}
}

func TestDeleteClientCascades(t *testing.T) {
	s := newTestStore(t)
	profileID := seedTree(t, s, 1, 2, 2, 2)

	clients, err := s.Clients(context.Background(), profileID)
	if err != nil {
		t.Fatalf("Clients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}

	if err := s.DeleteClient(context.Background(), clients[0].ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}

	for _, table := range []string{"line_items", "invoices", "projects", "clients"} {
		if got := countRows(t, s, table); got != 0 {
			t.Errorf("residual rows in %s: %d", table, got)
		}
	}
	if got := countRows(t, s, "profiles"); got != 1 {
		t.Errorf("profile should survive client delete, got %d rows", got)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	profileID := seedTree(t, s, 1, 1, 3, 2)
	ctx := context.Background()

	clients, err := s.Clients(ctx, profileID)
	if err != nil {
		t.Fatalf("Clients: %v", err)
	}
	projects, err := s.Projects(ctx, clients[0].ID)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}

	if err := s.DeleteProject(ctx, projects[0].ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	for _, table := range []string{"line_items", "invoices", "projects"} {
		if got := countRows(t, s, table); got != 0 {
			t.Errorf("residual rows in %s: %d", table, got)
		}
	}
}

// TestDeleteProfileRollsBackIntact injects a failure on the final delete step
// (the profile row itself) via a SQLite trigger and verifies the whole
// cascade rolls back, leaving every original row in place.
func TestDeleteProfileRollsBackIntact(t *testing.T) {
	s := newTestStore(t)
	profileID := seedTree(t, s, 2, 2, 2, 2)

	before := map[string]int{}
	tables := []string{"line_items", "invoices", "projects", "clients", "profiles"}
	for _, table := range tables {
		before[table] = countRows(t, s, table)
	}

	_, err := s.db.Exec(`
		CREATE TRIGGER fail_profile_delete BEFORE DELETE ON profiles
		BEGIN
			SELECT RAISE(ABORT, 'injected failure');
		END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	if err := s.DeleteProfile(context.Background(), profileID); err == nil {
		t.Fatal("expected injected failure")
	}

	for _, table := range tables {
		if got := countRows(t, s, table); got != before[table] {
			t.Errorf("%s: %d rows after rollback, want %d", table, got, before[table])
		}
	}
}

func TestDeleteInvoiceRemovesLineItems(t *testing.T) {
	s := newTestStore(t)
	profileID := seedTree(t, s, 1, 1, 1, 3)
	ctx := context.Background()

	clients, _ := s.Clients(ctx, profileID)
	projects, _ := s.Projects(ctx, clients[0].ID)
	invoices, err := s.Invoices(ctx, projects[0].ID)
	if err != nil {
		t.Fatalf("Invoices: %v", err)
	}

	if err := s.DeleteInvoice(ctx, invoices[0].ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	if got := countRows(t, s, "line_items"); got != 0 {
		t.Errorf("residual line items: %d", got)
	}
	if got := countRows(t, s, "invoices"); got != 0 {
		t.Errorf("residual invoices: %d", got)
	}
	if got := countRows(t, s, "projects"); got != 1 {
		t.Errorf("project should survive invoice delete")
	}
}
