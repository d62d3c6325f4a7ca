package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) View() string {
	if m.quitting {
		return ""
	}

	if m.email != nil {
		return m.email.View()
	}
	if m.wiz != nil {
		return m.breadcrumb() + "\n\n" + m.wiz.w.View()
	}

	var b strings.Builder
	b.WriteString(m.breadcrumb())
	b.WriteString("\n")
	if m.flashErr != "" {
		b.WriteString(styleError().Render(m.flashErr))
		b.WriteString("\n")
	}
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(m.footerHelp()))
	base := b.String()

	if m.confirm != nil {
		modal := renderConfirmModal(modalWidth, "Confirm Delete", m.confirm.prompt, m.confirm.focus)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}
	return base
}

func (m *appModel) screenTitle() string {
	switch m.scr.kind {
	case screenProfiles:
		return "Profiles"
	case screenClients:
		return "Clients"
	case screenProjects:
		return "Projects"
	case screenInvoices:
		return "Invoices"
	}
	return ""
}

func (m *appModel) breadcrumb() string {
	parts := append([]string{}, m.crumbs...)
	parts = append(parts, m.screenTitle())
	return styleBreadcrumb().Render(strings.Join(parts, " › "))
}

func (m *appModel) footerHelp() string {
	base := "n: new · e: edit · d: delete · /: filter"
	switch m.scr.kind {
	case screenProfiles:
		return base + " · enter: clients · q: quit"
	case screenClients:
		return base + " · enter: projects · esc: back"
	case screenProjects:
		return base + " · enter: invoices · esc: back"
	case screenInvoices:
		return base + " · m: email · esc: back"
	}
	return base
}
