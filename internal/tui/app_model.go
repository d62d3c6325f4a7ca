package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"invoicer-cli/internal/mail"
	"invoicer-cli/internal/model"
	"invoicer-cli/internal/render"
	"invoicer-cli/internal/store"
)

type appModel struct {
	store  *store.Store
	gen    *render.Generator
	sender mail.Sender
	log    *slog.Logger

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	scr  screen
	list list.Model
	// crumbs holds the names of the ancestors of the current screen, one
	// per navigation level above Profiles.
	crumbs []string

	// At most one of these is active; a wizard or overlay captures all keys
	// until it resolves.
	wiz     *activeWizard
	confirm *confirmDelete
	email   *emailOverlay

	// flashErr shows a transient storage error banner above the list.
	flashErr string

	quitting bool
}

func newAppModel(s *store.Store, gen *render.Generator, sender mail.Sender, log *slog.Logger) (*appModel, error) {
	m := &appModel{
		store:  s,
		gen:    gen,
		sender: sender,
		log:    log,
		scr:    screen{kind: screenProfiles},
	}
	if err := m.reload(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *appModel) Init() tea.Cmd { return nil }

// reload rebuilds the visible list from storage for the current screen.
func (m *appModel) reload(ctx context.Context) error {
	items, err := m.loadItems(ctx, m.scr)
	if err != nil {
		return err
	}
	sel := m.list.Index()
	m.list = newList(items)
	m.list.SetSize(m.listWidth(), m.listHeight())
	if sel > 0 && sel < len(items) {
		m.list.Select(sel)
	}
	return nil
}

func (m *appModel) loadItems(ctx context.Context, scr screen) ([]list.Item, error) {
	switch scr.kind {
	case screenProfiles:
		profiles, err := m.store.Profiles(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]list.Item, len(profiles))
		for i, p := range profiles {
			items[i] = profileItem{p: p}
		}
		return items, nil
	case screenClients:
		clients, err := m.store.Clients(ctx, scr.profileID)
		if err != nil {
			return nil, err
		}
		items := make([]list.Item, len(clients))
		for i, c := range clients {
			items[i] = clientItem{c: c}
		}
		return items, nil
	case screenProjects:
		projects, err := m.store.Projects(ctx, scr.clientID)
		if err != nil {
			return nil, err
		}
		items := make([]list.Item, len(projects))
		for i, p := range projects {
			items[i] = projectItem{p: p}
		}
		return items, nil
	case screenInvoices:
		invoices, err := m.store.Invoices(ctx, scr.projectID)
		if err != nil {
			return nil, err
		}
		items := make([]list.Item, len(invoices))
		for i, inv := range invoices {
			lines, err := m.store.LineItems(ctx, inv.ID)
			if err != nil {
				return nil, err
			}
			items[i] = invoiceItem{inv: inv, total: inv.Total(lines)}
		}
		return items, nil
	}
	return nil, fmt.Errorf("unknown screen kind %d", scr.kind)
}

// navigate moves to dst only if its list loads; on storage failure the
// current screen stays put and the error is surfaced instead.
func (m *appModel) navigate(ctx context.Context, dst screen) {
	items, err := m.loadItems(ctx, dst)
	if err != nil {
		m.log.Error("screen load failed", "error", err)
		m.flashErr = fmt.Sprintf("Could not load data: %v", err)
		return
	}
	m.scr = dst
	m.list = newList(items)
	m.list.SetSize(m.listWidth(), m.listHeight())
	if len(m.crumbs) > screenDepth(dst.kind) {
		m.crumbs = m.crumbs[:screenDepth(dst.kind)]
	}
}

func screenDepth(k screenKind) int {
	return int(k)
}

func (m *appModel) selectedProfile() (model.Profile, bool) {
	it, ok := m.list.SelectedItem().(profileItem)
	return it.p, ok
}

func (m *appModel) selectedClient() (model.Client, bool) {
	it, ok := m.list.SelectedItem().(clientItem)
	return it.c, ok
}

func (m *appModel) selectedProject() (model.Project, bool) {
	it, ok := m.list.SelectedItem().(projectItem)
	return it.p, ok
}

func (m *appModel) selectedInvoice() (model.Invoice, bool) {
	it, ok := m.list.SelectedItem().(invoiceItem)
	return it.inv, ok
}

func (m *appModel) listWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

func (m *appModel) listHeight() int {
	if m.height == 0 {
		return 24
	}
	h := m.height - 4 // header + breadcrumb + footer
	if h < 3 {
		h = 3
	}
	return h
}
