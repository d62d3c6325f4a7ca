package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"invoicer-cli/internal/model"
)

// wizardField is the capability contract every wizard field satisfies.
// The wizard itself only knows how to move focus between fields and how to
// enter/leave edit mode; everything kind-specific (text buffers, date part
// cycling, the nested line item list) lives behind this interface.
type wizardField interface {
	// Label is the caption shown in the field list.
	Label() string
	// View renders the field's current value. editing is true when the
	// wizard has entered this field.
	View(editing bool) string
	// BeginEdit is called when the wizard enters edit mode on this field.
	BeginEdit()
	// HandleKey processes a key while the field is being edited. Enter and
	// Esc are handled by the wizard, everything else lands here.
	HandleKey(msg tea.KeyMsg)
	// Commit is called on Enter. It reports whether the wizard should leave
	// edit mode; fields with internal sub-state (line items mid-edit) return
	// false to keep control.
	Commit() bool
	// CancelEdit abandons any in-progress input without committing.
	CancelEdit()
}

// textField edits a string in place. Every keystroke mutates the bound
// value directly, so cancelling keeps whatever was typed; that matches the
// character-level granularity the wizards expose.
type textField struct {
	label string
	get   func() string
	set   func(string)
}

func newTextField(label string, get func() string, set func(string)) *textField {
	return &textField{label: label, get: get, set: set}
}

// optionalText binds a *string so typing into an unset field materializes it.
func optionalText(p **string) (get func() string, set func(string)) {
	get = func() string {
		if *p == nil {
			return ""
		}
		return **p
	}
	set = func(v string) {
		if *p == nil {
			*p = new(string)
		}
		**p = v
	}
	return get, set
}

func newOptionalTextField(label string, p **string) *textField {
	get, set := optionalText(p)
	return newTextField(label, get, set)
}

// trimLastRune drops the final rune, not the final byte, so backspacing
// multi-byte input never leaves a broken character behind.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func (f *textField) Label() string { return f.label }

func (f *textField) View(editing bool) string {
	v := f.get()
	if editing {
		return v + "▏"
	}
	if v == "" {
		return styleMuted().Render("(empty)")
	}
	return v
}

func (f *textField) BeginEdit() {}

func (f *textField) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		f.set(f.get() + string(msg.Runes))
	case tea.KeySpace:
		f.set(f.get() + " ")
	case tea.KeyBackspace:
		f.set(trimLastRune(f.get()))
	}
}

func (f *textField) Commit() bool { return true }

func (f *textField) CancelEdit() {}

// numberField edits a float through a scratch buffer and only writes back on
// a successful parse. A failed parse keeps the scratch text and surfaces an
// inline error so the typist can fix it.
type numberField struct {
	label   string
	get     func() float64
	set     func(float64)
	scratch string
	err     string
}

func newNumberField(label string, get func() float64, set func(float64)) *numberField {
	return &numberField{label: label, get: get, set: set}
}

func (f *numberField) Label() string { return f.label }

func (f *numberField) View(editing bool) string {
	if editing {
		s := f.scratch + "▏"
		if f.err != "" {
			s += "  " + styleError().Render(f.err)
		}
		return s
	}
	return fmt.Sprintf("%.2f", f.get())
}

func (f *numberField) BeginEdit() {
	f.scratch = strconv.FormatFloat(f.get(), 'f', -1, 64)
	f.err = ""
}

func (f *numberField) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		f.scratch += string(msg.Runes)
	case tea.KeyBackspace:
		f.scratch = trimLastRune(f.scratch)
	}
}

func (f *numberField) Commit() bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(f.scratch), 64)
	if err != nil || v < 0 {
		f.err = "Invalid number. Please enter a valid non-negative number."
		return false
	}
	f.set(v)
	f.err = ""
	return true
}

func (f *numberField) CancelEdit() {
	f.scratch = ""
	f.err = ""
}

// dateWizardField wraps a dateField part editor and writes the edited date
// back to the bound target after every accepted keystroke, so the draft is
// always current even if the wizard is cancelled mid-edit.
type dateWizardField struct {
	label string
	df    dateField
	get   func() model.Date
	set   func(model.Date)
	// optional fields display a placeholder until first touched
	isSet func() bool
}

func newDateWizardField(label string, get func() model.Date, set func(model.Date)) *dateWizardField {
	return &dateWizardField{label: label, get: get, set: set}
}

func newOptionalDateWizardField(label string, get func() model.Date, set func(model.Date), isSet func() bool) *dateWizardField {
	return &dateWizardField{label: label, get: get, set: set, isSet: isSet}
}

func (f *dateWizardField) Label() string { return f.label }

func (f *dateWizardField) View(editing bool) string {
	if editing {
		return f.df.Render()
	}
	if f.isSet != nil && !f.isSet() {
		return styleMuted().Render("Not set")
	}
	return f.get().String()
}

func (f *dateWizardField) BeginEdit() {
	f.df = dateField{date: f.get()}
	f.df.ToggleEditing()
}

func (f *dateWizardField) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyLeft:
		f.df.PreviousPart()
	case tea.KeyRight, tea.KeyTab:
		f.df.NextPart()
	case tea.KeyBackspace:
		f.df.Backspace()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				f.df.InputDigit(r)
			}
		}
	}
	f.set(f.df.date)
}

func (f *dateWizardField) Commit() bool {
	f.set(f.df.date)
	f.df.editing = false
	return true
}

func (f *dateWizardField) CancelEdit() {
	f.df.editing = false
}

// lineItemsWizardField embeds the line item editor as a wizard field. While
// entered it routes keys to the editor's own list/edit sub-machine; Enter
// only leaves the field once no item edit is open.
type lineItemsWizardField struct {
	ed   *lineItemEditor
	rate func() float64
}

func newLineItemsWizardField(ed *lineItemEditor, rate func() float64) *lineItemsWizardField {
	return &lineItemsWizardField{ed: ed, rate: rate}
}

func (f *lineItemsWizardField) Label() string { return "Line Items" }

func (f *lineItemsWizardField) View(editing bool) string {
	return f.ed.render(f.rate())
}

func (f *lineItemsWizardField) BeginEdit() {}

func (f *lineItemsWizardField) HandleKey(msg tea.KeyMsg) {
	if f.ed.EditingItem() {
		switch msg.Type {
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				f.ed.InputRune(r)
			}
		case tea.KeySpace:
			f.ed.InputRune(' ')
		case tea.KeyBackspace:
			f.ed.Backspace()
		}
		return
	}
	switch msg.Type {
	case tea.KeyUp:
		f.ed.SelectPrevious()
	case tea.KeyDown:
		f.ed.SelectNext()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "a":
			f.ed.Add()
		case "e":
			f.ed.Edit()
		case "d":
			f.ed.Delete()
		case "k":
			f.ed.SelectPrevious()
		case "j":
			f.ed.SelectNext()
		}
	}
}

func (f *lineItemsWizardField) Commit() bool {
	if f.ed.EditingItem() {
		f.ed.Commit()
		return false
	}
	return true
}

func (f *lineItemsWizardField) CancelEdit() {
	if f.ed.EditingItem() {
		f.ed.CancelEdit()
	}
}
