package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"invoicer-cli/internal/model"
)

type profileItem struct {
	p model.Profile
}

func (i profileItem) FilterValue() string { return i.p.Name }
func (i profileItem) Title() string       { return i.p.Name }
func (i profileItem) Description() string {
	return fmt.Sprintf("%s · %s", i.p.Email, i.p.BankName)
}

type clientItem struct {
	c model.Client
}

func (i clientItem) FilterValue() string { return i.c.Name }
func (i clientItem) Title() string       { return i.c.Name }
func (i clientItem) Description() string {
	return fmt.Sprintf("%s · %s", i.c.Email, i.c.Phone)
}

type projectItem struct {
	p model.Project
}

func (i projectItem) FilterValue() string { return i.p.Name }
func (i projectItem) Title() string       { return i.p.Name }
func (i projectItem) Description() string {
	if i.p.EndDate != nil {
		return fmt.Sprintf("%s → %s", i.p.StartDate, *i.p.EndDate)
	}
	return fmt.Sprintf("%s → ongoing", i.p.StartDate)
}

type invoiceItem struct {
	inv   model.Invoice
	total float64
}

func (i invoiceItem) FilterValue() string { return fmt.Sprintf("Invoice #%d", i.inv.Number) }
func (i invoiceItem) Title() string       { return fmt.Sprintf("Invoice #%d", i.inv.Number) }
func (i invoiceItem) Description() string {
	return fmt.Sprintf("submitted %s · due %s · $%.2f · %s", i.inv.SubmitDate, i.inv.DueDate, i.total, i.inv.Status)
}

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC means "up one level"
	// and q only quits from the top screen, so the app handles both itself.
	l.KeyMap.Quit.SetEnabled(false)
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}
