package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"invoicer-cli/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strptr(s string) *string { return &s }

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	draft := model.Profile{
		Name:          "Acme Freelance",
		Phone:         "555-0100",
		Address:       strptr("1 Main St"),
		Email:         "me@acme.dev",
		BankName:      "First Bank",
		BankAccount:   "12345678",
		RoutingNumber: "021000021",
	}
	id, err := s.InsertProfile(ctx, draft)
	if err != nil {
		t.Fatalf("InsertProfile: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero id")
	}

	got, err := s.Profile(ctx, id)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	draft.ID = id
	if got.Name != draft.Name || got.Email != draft.Email || got.BankAccount != draft.BankAccount {
		t.Fatalf("loaded profile differs: got %+v, want %+v", got, draft)
	}
	if got.Address == nil || *got.Address != "1 Main St" {
		t.Fatalf("address not preserved: %+v", got.Address)
	}

	got.Name = "Acme Consulting"
	got.Address = nil
	if err := s.UpdateProfile(ctx, got); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	reloaded, err := s.Profile(ctx, id)
	if err != nil {
		t.Fatalf("Profile after update: %v", err)
	}
	if reloaded.Name != "Acme Consulting" {
		t.Fatalf("update not persisted: %+v", reloaded)
	}
	if reloaded.Address != nil {
		t.Fatalf("expected cleared address, got %q", *reloaded.Address)
	}
}

func TestProfileNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Profile(context.Background(), 42); err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestProjectOptionalEndDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	profileID, clientID := seedProfileAndClient(t, s)
	_ = profileID

	start := model.NewDate(2024, time.January, 1)
	id, err := s.InsertProject(ctx, model.Project{ClientID: clientID, Name: "Website", StartDate: start})
	if err != nil {
		t.Fatalf("InsertProject: %v", err)
	}
	p, err := s.Project(ctx, id)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if p.EndDate != nil {
		t.Fatalf("expected nil end date, got %v", p.EndDate)
	}
	if p.StartDate.String() != "2024-01-01" {
		t.Fatalf("start date: got %s", p.StartDate)
	}

	end := model.NewDate(2024, time.June, 30)
	p.EndDate = &end
	if err := s.UpdateProject(ctx, p); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	p, err = s.Project(ctx, id)
	if err != nil {
		t.Fatalf("Project after update: %v", err)
	}
	if p.EndDate == nil || p.EndDate.String() != "2024-06-30" {
		t.Fatalf("end date not persisted: %v", p.EndDate)
	}
}

func TestSaveInvoiceInsertAndUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, clientID := seedProfileAndClient(t, s)
	projectID, err := s.InsertProject(ctx, model.Project{
		ClientID:  clientID,
		Name:      "Website",
		StartDate: model.NewDate(2024, time.January, 1),
	})
	if err != nil {
		t.Fatalf("InsertProject: %v", err)
	}

	inv := model.Invoice{
		ProjectID:  projectID,
		Number:     1,
		SubmitDate: model.NewDate(2024, time.February, 1),
		DueDate:    model.NewDate(2024, time.February, 10),
		Rate:       50.0,
		Status:     "Draft",
	}
	items := []model.LineItem{{Description: "Design", Hours: 4}}

	id, err := s.SaveInvoice(ctx, inv, items)
	if err != nil {
		t.Fatalf("SaveInvoice (insert): %v", err)
	}
	loaded, loadedItems, err := s.InvoiceWithItems(ctx, id)
	if err != nil {
		t.Fatalf("InvoiceWithItems: %v", err)
	}
	if loaded.Number != 1 || loaded.Rate != 50.0 || loaded.Status != "Draft" {
		t.Fatalf("loaded invoice differs: %+v", loaded)
	}
	if loaded.SubmitDate.String() != "2024-02-01" || loaded.DueDate.String() != "2024-02-10" {
		t.Fatalf("dates differ: %+v", loaded)
	}
	if len(loadedItems) != 1 || loadedItems[0].Description != "Design" || loadedItems[0].Hours != 4 {
		t.Fatalf("line items differ: %+v", loadedItems)
	}
	if got := loaded.Total(loadedItems); got != 200.0 {
		t.Fatalf("total = %v, want 200.0", got)
	}

	// Update replaces the line-item set wholesale.
	loaded.Rate = 60.0
	newItems := []model.LineItem{
		{Description: "Design", Hours: 4},
		{Description: "Deploy", Hours: 2.5},
	}
	if _, err := s.SaveInvoice(ctx, loaded, newItems); err != nil {
		t.Fatalf("SaveInvoice (update): %v", err)
	}
	reloaded, reloadedItems, err := s.InvoiceWithItems(ctx, id)
	if err != nil {
		t.Fatalf("InvoiceWithItems after update: %v", err)
	}
	if reloaded.Rate != 60.0 {
		t.Fatalf("rate not updated: %+v", reloaded)
	}
	if len(reloadedItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(reloadedItems))
	}
	if got := reloaded.Total(reloadedItems); got != 390.0 {
		t.Fatalf("total = %v, want 390.0", got)
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, clientID := seedProfileAndClient(t, s)
	projectID, err := s.InsertProject(ctx, model.Project{
		ClientID:  clientID,
		Name:      "Website",
		StartDate: model.NewDate(2024, time.January, 1),
	})
	if err != nil {
		t.Fatalf("InsertProject: %v", err)
	}

	n, err := s.NextInvoiceNumber(ctx, projectID)
	if err != nil {
		t.Fatalf("NextInvoiceNumber: %v", err)
	}
	if n != 1 {
		t.Fatalf("first number = %d, want 1", n)
	}

	inv := model.Invoice{
		ProjectID:  projectID,
		Number:     7,
		SubmitDate: model.NewDate(2024, time.February, 1),
		DueDate:    model.NewDate(2024, time.February, 10),
		Rate:       50.0,
		Status:     "Draft",
	}
	if _, err := s.SaveInvoice(ctx, inv, []model.LineItem{{Description: "Work", Hours: 1}}); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	n, err = s.NextInvoiceNumber(ctx, projectID)
	if err != nil {
		t.Fatalf("NextInvoiceNumber: %v", err)
	}
	if n != 8 {
		t.Fatalf("number = %d, want 8", n)
	}
}

func TestDeleteLineItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, clientID := seedProfileAndClient(t, s)
	projectID, err := s.InsertProject(ctx, model.Project{
		ClientID:  clientID,
		Name:      "Website",
		StartDate: model.NewDate(2024, time.January, 1),
	})
	if err != nil {
		t.Fatalf("InsertProject: %v", err)
	}
	id, err := s.SaveInvoice(ctx, model.Invoice{
		ProjectID:  projectID,
		Number:     1,
		SubmitDate: model.NewDate(2024, time.February, 1),
		DueDate:    model.NewDate(2024, time.February, 10),
		Rate:       50.0,
		Status:     "Draft",
	}, []model.LineItem{
		{Description: "Design", Hours: 4},
		{Description: "Deploy", Hours: 2},
	})
	if err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}

	items, err := s.LineItems(ctx, id)
	if err != nil {
		t.Fatalf("LineItems: %v", err)
	}
	if err := s.DeleteLineItem(ctx, items[0].ID); err != nil {
		t.Fatalf("DeleteLineItem: %v", err)
	}
	remaining, err := s.LineItems(ctx, id)
	if err != nil {
		t.Fatalf("LineItems after delete: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Description != "Deploy" {
		t.Fatalf("remaining = %+v", remaining)
	}
}

func seedProfileAndClient(t *testing.T, s *Store) (profileID, clientID int64) {
	t.Helper()
	ctx := context.Background()
	profileID, err := s.InsertProfile(ctx, model.Profile{
		Name: "Acme", Phone: "555-0100", Email: "me@acme.dev",
		BankName: "First Bank", BankAccount: "12345678", RoutingNumber: "021000021",
	})
	if err != nil {
		t.Fatalf("InsertProfile: %v", err)
	}
	clientID, err = s.InsertClient(ctx, model.Client{
		ProfileID: profileID, Name: "Bob", Phone: "555-0101", Email: "bob@x.com",
	})
	if err != nil {
		t.Fatalf("InsertClient: %v", err)
	}
	return profileID, clientID
}
