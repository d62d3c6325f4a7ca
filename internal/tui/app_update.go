package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"invoicer-cli/internal/model"
)

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.list.SetSize(m.listWidth(), m.listHeight())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// Overlays capture all input while open.
	if m.email != nil {
		if m.email.Update(msg) == emailDismiss {
			m.email = nil
		}
		return m, nil
	}
	if m.confirm != nil {
		m.updateConfirm(ctx, msg)
		return m, nil
	}
	if m.wiz != nil {
		m.updateWizard(ctx, msg)
		return m, nil
	}

	if m.flashErr != "" {
		m.flashErr = ""
		return m, nil
	}

	// While the list filter input is open, it owns the keyboard.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		if m.scr.kind == screenProfiles {
			return m.quit()
		}
		m.navigate(ctx, m.scr.parent())
		return m, nil
	case "enter":
		m.descend(ctx)
		return m, nil
	case "n":
		m.openCreateWizard(ctx)
		return m, nil
	case "e":
		m.openEditWizard(ctx)
		return m, nil
	case "d":
		m.openDeleteConfirm()
		return m, nil
	case "m":
		if m.scr.kind == screenInvoices {
			m.openEmailOverlay(ctx)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *appModel) quit() (tea.Model, tea.Cmd) {
	// Force-closing the email overlay must not leave artifacts behind.
	if m.email != nil {
		m.email.Cleanup()
		m.email = nil
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *appModel) descend(ctx context.Context) {
	var dst screen
	var name string
	switch m.scr.kind {
	case screenProfiles:
		p, ok := m.selectedProfile()
		if !ok {
			return
		}
		dst = screen{kind: screenClients, profileID: p.ID}
		name = p.Name
	case screenClients:
		c, ok := m.selectedClient()
		if !ok {
			return
		}
		dst = screen{kind: screenProjects, profileID: m.scr.profileID, clientID: c.ID}
		name = c.Name
	case screenProjects:
		p, ok := m.selectedProject()
		if !ok {
			return
		}
		dst = screen{
			kind:      screenInvoices,
			profileID: m.scr.profileID,
			clientID:  m.scr.clientID,
			projectID: p.ID,
		}
		name = p.Name
	default:
		return
	}
	m.navigate(ctx, dst)
	if m.scr == dst {
		m.crumbs = append(m.crumbs, name)
	}
}

func (m *appModel) updateWizard(ctx context.Context, msg tea.KeyMsg) {
	switch m.wiz.w.Update(msg) {
	case wizardSave:
		if err := m.wiz.save(ctx); err != nil {
			m.log.Error("save failed", "error", err)
			m.wiz.w.SetStorageError(err)
			return
		}
		m.wiz = nil
		if err := m.reload(ctx); err != nil {
			m.flashErr = fmt.Sprintf("Could not load data: %v", err)
		}
	case wizardCancel:
		m.wiz = nil
	}
}

func (m *appModel) updateConfirm(ctx context.Context, msg tea.KeyMsg) {
	run := func() {
		c := m.confirm
		m.confirm = nil
		if err := c.run(ctx); err != nil {
			m.log.Error("delete failed", "error", err)
			m.flashErr = fmt.Sprintf("Delete failed: %v", err)
			return
		}
		if err := m.reload(ctx); err != nil {
			m.flashErr = fmt.Sprintf("Could not load data: %v", err)
		}
	}

	switch msg.String() {
	case "y":
		run()
	case "n", "esc":
		m.confirm = nil
	case "tab":
		if m.confirm.focus == confirmFocusCancel {
			m.confirm.focus = confirmFocusConfirm
		} else {
			m.confirm.focus = confirmFocusCancel
		}
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			run()
		} else {
			m.confirm = nil
		}
	}
}

func (m *appModel) openCreateWizard(ctx context.Context) {
	switch m.scr.kind {
	case screenProfiles:
		draft := &model.Profile{}
		m.wiz = &activeWizard{
			w: &newProfileWizard(draft).entityWizard,
			save: func(ctx context.Context) error {
				_, err := m.store.InsertProfile(ctx, *draft)
				return err
			},
		}
	case screenClients:
		draft := &model.Client{ProfileID: m.scr.profileID}
		m.wiz = &activeWizard{
			w: &newClientWizard(draft).entityWizard,
			save: func(ctx context.Context) error {
				_, err := m.store.InsertClient(ctx, *draft)
				return err
			},
		}
	case screenProjects:
		draft := &model.Project{ClientID: m.scr.clientID}
		m.wiz = &activeWizard{
			w: &newProjectWizard(draft).entityWizard,
			save: func(ctx context.Context) error {
				_, err := m.store.InsertProject(ctx, *draft)
				return err
			},
		}
	case screenInvoices:
		number, err := m.store.NextInvoiceNumber(ctx, m.scr.projectID)
		if err != nil {
			m.flashErr = fmt.Sprintf("Could not allocate invoice number: %v", err)
			return
		}
		draft := &model.Invoice{ProjectID: m.scr.projectID, Number: number, Status: "Draft"}
		wiz := newInvoiceWizard(draft, nil)
		m.wiz = &activeWizard{
			w: &wiz.entityWizard,
			save: func(ctx context.Context) error {
				_, err := m.store.SaveInvoice(ctx, *draft, wiz.items.Items())
				return err
			},
		}
	}
}

func (m *appModel) openEditWizard(ctx context.Context) {
	switch m.scr.kind {
	case screenProfiles:
		p, ok := m.selectedProfile()
		if !ok {
			return
		}
		draft := &p
		m.wiz = &activeWizard{
			w: &newProfileWizard(draft).entityWizard,
			save: func(ctx context.Context) error {
				return m.store.UpdateProfile(ctx, *draft)
			},
		}
	case screenClients:
		c, ok := m.selectedClient()
		if !ok {
			return
		}
		draft := &c
		m.wiz = &activeWizard{
			w: &newClientWizard(draft).entityWizard,
			save: func(ctx context.Context) error {
				return m.store.UpdateClient(ctx, *draft)
			},
		}
	case screenProjects:
		p, ok := m.selectedProject()
		if !ok {
			return
		}
		draft := &p
		m.wiz = &activeWizard{
			w: &newProjectWizard(draft).entityWizard,
			save: func(ctx context.Context) error {
				return m.store.UpdateProject(ctx, *draft)
			},
		}
	case screenInvoices:
		sel, ok := m.selectedInvoice()
		if !ok {
			return
		}
		inv, items, err := m.store.InvoiceWithItems(ctx, sel.ID)
		if err != nil {
			m.flashErr = fmt.Sprintf("Could not load invoice: %v", err)
			return
		}
		draft := &inv
		wiz := newInvoiceWizard(draft, items)
		m.wiz = &activeWizard{
			w: &wiz.entityWizard,
			save: func(ctx context.Context) error {
				_, err := m.store.SaveInvoice(ctx, *draft, wiz.items.Items())
				return err
			},
		}
	}
}

func (m *appModel) openDeleteConfirm() {
	switch m.scr.kind {
	case screenProfiles:
		if p, ok := m.selectedProfile(); ok {
			m.confirm = &confirmDelete{
				prompt: fmt.Sprintf("Delete profile %q and all of its clients, projects and invoices?", p.Name),
				run: func(ctx context.Context) error {
					return m.store.DeleteProfile(ctx, p.ID)
				},
			}
		}
	case screenClients:
		if c, ok := m.selectedClient(); ok {
			m.confirm = &confirmDelete{
				prompt: fmt.Sprintf("Delete client %q and all of its projects and invoices?", c.Name),
				run: func(ctx context.Context) error {
					return m.store.DeleteClient(ctx, c.ID)
				},
			}
		}
	case screenProjects:
		if p, ok := m.selectedProject(); ok {
			m.confirm = &confirmDelete{
				prompt: fmt.Sprintf("Delete project %q and all of its invoices?", p.Name),
				run: func(ctx context.Context) error {
					return m.store.DeleteProject(ctx, p.ID)
				},
			}
		}
	case screenInvoices:
		if inv, ok := m.selectedInvoice(); ok {
			m.confirm = &confirmDelete{
				prompt: fmt.Sprintf("Delete invoice #%d and its line items?", inv.Number),
				run: func(ctx context.Context) error {
					return m.store.DeleteInvoice(ctx, inv.ID)
				},
			}
		}
	}
}

func (m *appModel) openEmailOverlay(ctx context.Context) {
	sel, ok := m.selectedInvoice()
	if !ok {
		return
	}
	inv, items, err := m.store.InvoiceWithItems(ctx, sel.ID)
	if err != nil {
		m.flashErr = fmt.Sprintf("Could not load invoice: %v", err)
		return
	}
	project, err := m.store.Project(ctx, inv.ProjectID)
	if err != nil {
		m.flashErr = fmt.Sprintf("Could not load project: %v", err)
		return
	}
	client, err := m.store.Client(ctx, project.ClientID)
	if err != nil {
		m.flashErr = fmt.Sprintf("Could not load client: %v", err)
		return
	}
	profile, err := m.store.Profile(ctx, client.ProfileID)
	if err != nil {
		m.flashErr = fmt.Sprintf("Could not load profile: %v", err)
		return
	}
	m.email = newEmailOverlay(inv, items, profile, client, project, m.gen, m.sender, m.log)
}
