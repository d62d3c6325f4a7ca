package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"invoicer-cli/internal/model"
)

func typeRunes(e *lineItemEditor, s string) {
	for _, c := range s {
		e.InputRune(c)
	}
}

func TestLineItemAddEditsDescription(t *testing.T) {
	e := newLineItemEditor(nil)
	e.Add()
	if !e.EditingItem() {
		t.Fatal("Add must enter edit mode")
	}
	if e.sel != 0 {
		t.Fatalf("sel = %d", e.sel)
	}
	typeRunes(e, "Design")
	e.Commit() // commit description, move to hours
	if e.edit.field != liFieldHours {
		t.Fatal("expected focus on hours after committing description")
	}
	e.edit.scratch = ""
	typeRunes(e, "4")
	e.Commit()
	if e.EditingItem() {
		t.Fatal("expected edit to finish after committing hours")
	}
	if got := e.items[0]; got.Description != "Design" || got.Hours != 4 {
		t.Fatalf("item = %+v", got)
	}
}

func TestLineItemDescriptionBackspaceMultiByte(t *testing.T) {
	e := newLineItemEditor(nil)
	e.Add()
	typeRunes(e, "Café")
	e.Backspace()
	if e.edit.scratch != "Caf" {
		t.Fatalf("scratch = %q", e.edit.scratch)
	}
	if !utf8.ValidString(e.edit.scratch) {
		t.Fatalf("scratch is not valid UTF-8: %q", e.edit.scratch)
	}
}

func TestLineItemLocalIDsAreSequential(t *testing.T) {
	e := newLineItemEditor(nil)
	e.Add()
	e.CancelEdit()
	e.Add()
	e.CancelEdit()
	if e.items[0].ID != 1 || e.items[1].ID != 2 {
		t.Fatalf("ids = %d, %d", e.items[0].ID, e.items[1].ID)
	}

	// Seeded from existing items, new ids continue past the max.
	e2 := newLineItemEditor([]model.LineItem{{ID: 7, Description: "Old", Hours: 1}})
	e2.Add()
	if e2.items[1].ID != 8 {
		t.Fatalf("id after existing = %d", e2.items[1].ID)
	}
}

func TestLineItemHoursRejectsInvalid(t *testing.T) {
	e := newLineItemEditor(nil)
	e.Add()
	typeRunes(e, "Design")
	e.Commit()
	e.edit.scratch = "abc"
	e.Commit()
	if !e.EditingItem() {
		t.Fatal("invalid hours must keep the field in edit mode")
	}
	if e.errMsg == "" {
		t.Fatal("expected an inline error message")
	}
	if e.edit.scratch != "abc" {
		t.Fatalf("invalid text must not be discarded, got %q", e.edit.scratch)
	}

	e.edit.scratch = "-2"
	e.Commit()
	if !e.EditingItem() || e.errMsg == "" {
		t.Fatal("negative hours must be rejected")
	}

	e.edit.scratch = "2.5"
	e.Commit()
	if e.EditingItem() {
		t.Fatal("valid hours must finish the edit")
	}
	if e.items[0].Hours != 2.5 {
		t.Fatalf("hours = %v", e.items[0].Hours)
	}
	if e.errMsg != "" {
		t.Fatal("error must clear on valid commit")
	}
}

func TestLineItemDeleteClampsSelection(t *testing.T) {
	e := newLineItemEditor([]model.LineItem{
		{ID: 1, Description: "A", Hours: 1},
		{ID: 2, Description: "B", Hours: 2},
		{ID: 3, Description: "C", Hours: 3},
	})
	e.sel = 2
	e.Delete()
	if e.sel != 1 {
		t.Fatalf("sel after deleting last = %d, want 1", e.sel)
	}
	e.Delete()
	if e.sel != 0 {
		t.Fatalf("sel = %d, want 0", e.sel)
	}
	e.Delete()
	if e.sel != -1 {
		t.Fatalf("sel after emptying = %d, want -1", e.sel)
	}
	e.Delete() // no-op on empty list
	if len(e.items) != 0 {
		t.Fatal("delete on empty list must be a no-op")
	}
}

func TestLineItemSelectionWraps(t *testing.T) {
	e := newLineItemEditor([]model.LineItem{{ID: 1}, {ID: 2}})
	e.SelectNext()
	e.SelectNext()
	if e.sel != 0 {
		t.Fatalf("sel = %d, want wraparound to 0", e.sel)
	}
	e.SelectPrevious()
	if e.sel != 1 {
		t.Fatalf("sel = %d, want 1", e.sel)
	}
}

func TestLineItemRenderTotals(t *testing.T) {
	e := newLineItemEditor([]model.LineItem{
		{ID: 1, Description: "Design", Hours: 4},
		{ID: 2, Description: "Deploy", Hours: 2.5},
	})
	out := e.render(100.0)
	if !strings.Contains(out, "Total Amount: $650.00") {
		t.Fatalf("render missing total:\n%s", out)
	}
	if !strings.Contains(out, "Design: 4 hours ($400.00)") {
		t.Fatalf("render missing item amount:\n%s", out)
	}
}
