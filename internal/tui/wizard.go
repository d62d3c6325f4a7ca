package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"invoicer-cli/internal/model"
)

// wizardResult tells the navigator what a key did to the wizard.
type wizardResult int

const (
	wizardContinue wizardResult = iota
	wizardSave
	wizardCancel
)

// entityWizard is the shared field-list engine behind every create/edit form.
// It owns focus movement and the editing flag; per-field behavior is
// dispatched through the wizardField interface, so adding a field kind never
// touches this switch.
type entityWizard struct {
	title    string
	fields   []wizardField
	focus    int
	editing  bool
	errMsg   string
	validate func() string
}

func (w *entityWizard) Editing() bool { return w.editing }

func (w *entityWizard) Update(msg tea.KeyMsg) wizardResult {
	if w.editing {
		switch msg.Type {
		case tea.KeyEnter:
			if w.fields[w.focus].Commit() {
				w.editing = false
			}
			return wizardContinue
		case tea.KeyEsc:
			w.fields[w.focus].CancelEdit()
			w.editing = false
			return wizardContinue
		}
		w.fields[w.focus].HandleKey(msg)
		return wizardContinue
	}

	switch msg.Type {
	case tea.KeyEsc:
		return wizardCancel
	case tea.KeyEnter:
		w.errMsg = ""
		w.editing = true
		w.fields[w.focus].BeginEdit()
		return wizardContinue
	case tea.KeyUp:
		w.focusPrevious()
	case tea.KeyDown, tea.KeyTab:
		w.focusNext()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "k":
			w.focusPrevious()
		case "j":
			w.focusNext()
		case "s":
			if m := w.validate(); m != "" {
				w.errMsg = m
				return wizardContinue
			}
			return wizardSave
		}
	}
	return wizardContinue
}

func (w *entityWizard) focusNext() {
	w.focus = (w.focus + 1) % len(w.fields)
}

func (w *entityWizard) focusPrevious() {
	w.focus = (w.focus - 1 + len(w.fields)) % len(w.fields)
}

// SetStorageError surfaces a failed save without losing the draft.
func (w *entityWizard) SetStorageError(err error) {
	w.errMsg = fmt.Sprintf("Save failed: %v", err)
}

func (w *entityWizard) View() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render(w.title))
	b.WriteString("\n\n")
	for i, f := range w.fields {
		marker := "  "
		label := f.Label()
		if i == w.focus {
			marker = "> "
			label = styleFieldFocus().Render(label)
		}
		editing := w.editing && i == w.focus
		val := f.View(editing)
		if strings.Contains(val, "\n") {
			b.WriteString(marker + label + ":\n")
			for _, line := range strings.Split(val, "\n") {
				b.WriteString("    " + line + "\n")
			}
		} else {
			b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, label, val))
		}
	}
	if w.errMsg != "" {
		b.WriteString("\n" + styleError().Render(w.errMsg) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render(w.helpLine()))
	return b.String()
}

func (w *entityWizard) helpLine() string {
	if w.editing {
		return "enter: done · esc: stop editing"
	}
	return "↑/↓: field · enter: edit · s: save · esc: cancel"
}

func requiredText(label string, get func() string) func() string {
	return func() string {
		if strings.TrimSpace(get()) == "" {
			return fmt.Sprintf("%s is required.", label)
		}
		return ""
	}
}

func firstError(checks ...func() string) func() string {
	return func() string {
		for _, c := range checks {
			if m := c(); m != "" {
				return m
			}
		}
		return ""
	}
}

// profileWizard edits a billing profile draft in place.
type profileWizard struct {
	entityWizard
	draft *model.Profile
}

func newProfileWizard(draft *model.Profile) *profileWizard {
	w := &profileWizard{draft: draft}
	title := "New Profile"
	if draft.ID != 0 {
		title = "Edit Profile"
	}
	w.title = title
	w.fields = []wizardField{
		newTextField("Name", func() string { return draft.Name }, func(v string) { draft.Name = v }),
		newTextField("Email", func() string { return draft.Email }, func(v string) { draft.Email = v }),
		newTextField("Phone", func() string { return draft.Phone }, func(v string) { draft.Phone = v }),
		newOptionalTextField("Address", &draft.Address),
		newTextField("Bank Name", func() string { return draft.BankName }, func(v string) { draft.BankName = v }),
		newTextField("Account Number", func() string { return draft.BankAccount }, func(v string) { draft.BankAccount = v }),
		newTextField("Routing Number", func() string { return draft.RoutingNumber }, func(v string) { draft.RoutingNumber = v }),
	}
	w.validate = firstError(
		requiredText("Name", func() string { return draft.Name }),
		requiredText("Email", func() string { return draft.Email }),
		requiredText("Phone", func() string { return draft.Phone }),
		requiredText("Bank Name", func() string { return draft.BankName }),
		requiredText("Account Number", func() string { return draft.BankAccount }),
		requiredText("Routing Number", func() string { return draft.RoutingNumber }),
	)
	return w
}

// clientWizard edits a client draft in place.
type clientWizard struct {
	entityWizard
	draft *model.Client
}

func newClientWizard(draft *model.Client) *clientWizard {
	w := &clientWizard{draft: draft}
	title := "New Client"
	if draft.ID != 0 {
		title = "Edit Client"
	}
	w.title = title
	w.fields = []wizardField{
		newTextField("Name", func() string { return draft.Name }, func(v string) { draft.Name = v }),
		newTextField("Email", func() string { return draft.Email }, func(v string) { draft.Email = v }),
		newTextField("Phone", func() string { return draft.Phone }, func(v string) { draft.Phone = v }),
		newOptionalTextField("Address", &draft.Address),
	}
	w.validate = firstError(
		requiredText("Name", func() string { return draft.Name }),
		requiredText("Email", func() string { return draft.Email }),
		requiredText("Phone", func() string { return draft.Phone }),
	)
	return w
}

// projectWizard edits a project draft in place. The end date stays unset
// until the field is first touched.
type projectWizard struct {
	entityWizard
	draft *model.Project
}

func newProjectWizard(draft *model.Project) *projectWizard {
	w := &projectWizard{draft: draft}
	title := "New Project"
	if draft.ID != 0 {
		title = "Edit Project"
	}
	if draft.StartDate.IsZero() {
		draft.StartDate = model.Today()
	}
	w.title = title
	w.fields = []wizardField{
		newTextField("Name", func() string { return draft.Name }, func(v string) { draft.Name = v }),
		newDateWizardField("Start Date",
			func() model.Date { return draft.StartDate },
			func(d model.Date) { draft.StartDate = d }),
		newOptionalDateWizardField("End Date",
			func() model.Date {
				if draft.EndDate == nil {
					return draft.StartDate
				}
				return *draft.EndDate
			},
			func(d model.Date) {
				if draft.EndDate == nil {
					draft.EndDate = new(model.Date)
				}
				*draft.EndDate = d
			},
			func() bool { return draft.EndDate != nil }),
	}
	w.validate = requiredText("Name", func() string { return draft.Name })
	return w
}

// invoiceWizard edits an invoice draft plus its line items. Items live in a
// nested editor and are only persisted together with the invoice on save.
type invoiceWizard struct {
	entityWizard
	draft *model.Invoice
	items *lineItemEditor
}

func newInvoiceWizard(draft *model.Invoice, items []model.LineItem) *invoiceWizard {
	w := &invoiceWizard{draft: draft, items: newLineItemEditor(items)}
	title := "New Invoice"
	if draft.ID != 0 {
		title = "Edit Invoice"
	}
	if draft.SubmitDate.IsZero() {
		draft.SubmitDate = model.Today()
	}
	if draft.DueDate.IsZero() {
		draft.DueDate = draft.SubmitDate.AddDays(5)
	}
	w.title = title
	w.fields = []wizardField{
		newDateWizardField("Submit Date",
			func() model.Date { return draft.SubmitDate },
			func(d model.Date) { draft.SubmitDate = d }),
		newDateWizardField("Due Date",
			func() model.Date { return draft.DueDate },
			func(d model.Date) { draft.DueDate = d }),
		newNumberField("Hourly Rate",
			func() float64 { return draft.Rate },
			func(v float64) { draft.Rate = v }),
		newLineItemsWizardField(w.items, func() float64 { return draft.Rate }),
	}
	w.validate = func() string {
		if draft.Rate <= 0 {
			return "Hourly rate must be greater than zero."
		}
		if len(w.items.Items()) == 0 {
			return "Add at least one line item."
		}
		return ""
	}
	return w
}
