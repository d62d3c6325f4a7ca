// Package tui implements the interactive invoicing terminal UI: four nested
// list screens (profiles, clients, projects, invoices), create/edit wizards
// for each entity, and an email overlay that renders and sends an invoice.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"invoicer-cli/internal/mail"
	"invoicer-cli/internal/render"
	"invoicer-cli/internal/store"
)

func Run(s *store.Store, gen *render.Generator, sender mail.Sender, log *slog.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()

	m, err := newAppModel(s, gen, sender, log)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
