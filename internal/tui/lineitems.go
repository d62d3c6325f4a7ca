package tui

import (
	"fmt"
	"strconv"
	"strings"

	"invoicer-cli/internal/model"
)

type lineItemField int

const (
	liFieldDescription lineItemField = iota
	liFieldHours
)

// lineItemEdit tracks the in-progress edit of one item: which field has
// focus and its scratch text. Hours are committed from the scratch text only
// when it parses as a non-negative number; a bad value keeps the field in
// edit mode with an inline error instead of discarding the text.
type lineItemEdit struct {
	idx     int
	field   lineItemField
	scratch string
}

// lineItemEditor is the selectable line-item list nested inside the invoice
// wizard. Items live only in memory until the wizard saves; new items get a
// locally-unique sequential id so selection survives edits.
type lineItemEditor struct {
	items  []model.LineItem
	sel    int // -1 when the list is empty
	edit   *lineItemEdit
	errMsg string

	nextLocalID int64
}

func newLineItemEditor(items []model.LineItem) *lineItemEditor {
	e := &lineItemEditor{items: items, sel: -1}
	if len(items) > 0 {
		e.sel = 0
	}
	for _, li := range items {
		if li.ID >= e.nextLocalID {
			e.nextLocalID = li.ID + 1
		}
	}
	if e.nextLocalID == 0 {
		e.nextLocalID = 1
	}
	return e
}

func (e *lineItemEditor) Items() []model.LineItem { return e.items }
func (e *lineItemEditor) EditingItem() bool       { return e.edit != nil }

func (e *lineItemEditor) SelectNext() {
	if len(e.items) == 0 {
		return
	}
	e.sel = (e.sel + 1) % len(e.items)
}

func (e *lineItemEditor) SelectPrevious() {
	if len(e.items) == 0 {
		return
	}
	e.sel--
	if e.sel < 0 {
		e.sel = len(e.items) - 1
	}
}

// Add creates a zero-valued item, selects it and starts editing its
// description.
func (e *lineItemEditor) Add() {
	e.items = append(e.items, model.LineItem{ID: e.nextLocalID})
	e.nextLocalID++
	e.sel = len(e.items) - 1
	e.edit = &lineItemEdit{idx: e.sel, field: liFieldDescription}
	e.errMsg = ""
}

// Edit starts editing the selected item's description.
func (e *lineItemEditor) Edit() {
	if e.sel < 0 || e.sel >= len(e.items) {
		return
	}
	e.edit = &lineItemEdit{idx: e.sel, field: liFieldDescription, scratch: e.items[e.sel].Description}
	e.errMsg = ""
}

// Delete removes the selected item and re-clamps the selection; an emptied
// list clears it.
func (e *lineItemEditor) Delete() {
	if e.sel < 0 || e.sel >= len(e.items) {
		return
	}
	e.items = append(e.items[:e.sel], e.items[e.sel+1:]...)
	if len(e.items) == 0 {
		e.sel = -1
	} else if e.sel >= len(e.items) {
		e.sel = len(e.items) - 1
	}
	e.edit = nil
	e.errMsg = ""
}

func (e *lineItemEditor) InputRune(c rune) {
	if e.edit == nil {
		return
	}
	e.edit.scratch += string(c)
}

func (e *lineItemEditor) Backspace() {
	if e.edit == nil {
		return
	}
	e.edit.scratch = trimLastRune(e.edit.scratch)
}

// Commit applies the focused field's scratch text and advances: Description
// moves on to Hours; committing Hours finishes the edit. An unparsable or
// negative hours value is rejected with an inline error and the field stays
// in edit mode.
func (e *lineItemEditor) Commit() {
	if e.edit == nil || e.edit.idx >= len(e.items) {
		return
	}
	switch e.edit.field {
	case liFieldDescription:
		e.items[e.edit.idx].Description = e.edit.scratch
		e.edit.field = liFieldHours
		e.edit.scratch = strconv.FormatFloat(e.items[e.edit.idx].Hours, 'f', -1, 64)
		e.errMsg = ""
	case liFieldHours:
		hours, err := strconv.ParseFloat(strings.TrimSpace(e.edit.scratch), 64)
		if err != nil || hours < 0 {
			e.errMsg = "Invalid hours. Please enter a valid non-negative number."
			return
		}
		e.items[e.edit.idx].Hours = hours
		e.edit = nil
		e.errMsg = ""
	}
}

// CancelEdit abandons the in-progress item edit without touching the item.
func (e *lineItemEditor) CancelEdit() {
	e.edit = nil
	e.errMsg = ""
}

func (e *lineItemEditor) render(rate float64) string {
	var b strings.Builder
	if e.edit != nil {
		li := e.items[e.edit.idx]
		desc := li.Description
		hours := strconv.FormatFloat(li.Hours, 'f', -1, 64)
		if e.edit.field == liFieldDescription {
			desc = e.edit.scratch + "|"
		} else {
			hours = e.edit.scratch + "|"
		}
		fmt.Fprintf(&b, "  Description: %s\n", desc)
		fmt.Fprintf(&b, "  Hours: %s\n", hours)
		if e.errMsg != "" {
			b.WriteString("  " + styleError().Render(e.errMsg) + "\n")
		}
		return b.String()
	}

	if len(e.items) == 0 {
		return "  No line items added yet\n"
	}
	for i, li := range e.items {
		cursor := "  "
		if i == e.sel {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s: %v hours ($%.2f)\n", cursor, li.Description, li.Hours, li.Amount(rate))
	}
	fmt.Fprintf(&b, "\n  Total Hours: %v\n  Total Amount: $%.2f\n",
		model.TotalHours(e.items), model.Invoice{Rate: rate}.Total(e.items))
	return b.String()
}
