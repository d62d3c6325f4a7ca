package tui

import (
	"testing"
	"time"

	"invoicer-cli/internal/model"
)

func typeDigits(f *dateField, s string) {
	for _, c := range s {
		f.InputDigit(c)
	}
}

func TestDateFieldEditYear(t *testing.T) {
	f := newDateField(model.NewDate(2024, time.March, 15))
	f.ToggleEditing()
	if f.part != partYear {
		t.Fatal("edit mode must start on the year part")
	}
	typeDigits(f, "2030")
	if f.date.String() != "2030-03-15" {
		t.Fatalf("got %s", f.date)
	}
	if f.scratch != "" {
		t.Fatalf("scratch not cleared: %q", f.scratch)
	}
}

func TestDateFieldPartCycle(t *testing.T) {
	f := newDateField(model.NewDate(2024, time.March, 15))
	f.ToggleEditing()

	f.NextPart()
	typeDigits(f, "07")
	f.NextPart()
	typeDigits(f, "04")
	if f.date.String() != "2024-07-04" {
		t.Fatalf("got %s", f.date)
	}

	// Day wraps forward to year; year wraps backward to day.
	f.NextPart()
	if f.part != partYear {
		t.Fatalf("expected wrap to year, got %v", f.part)
	}
	f.PreviousPart()
	if f.part != partDay {
		t.Fatalf("expected wrap to day, got %v", f.part)
	}
}

func TestDateFieldBoundsSilentlyDiscard(t *testing.T) {
	f := newDateField(model.NewDate(2024, time.March, 15))
	f.ToggleEditing()

	typeDigits(f, "1899")
	if f.date.Year != 2024 {
		t.Fatalf("year below 1900 applied: %s", f.date)
	}
	typeDigits(f, "2101")
	if f.date.Year != 2024 {
		t.Fatalf("year above 2100 applied: %s", f.date)
	}

	f.NextPart()
	typeDigits(f, "13")
	if f.date.Month != time.March {
		t.Fatalf("month 13 applied: %s", f.date)
	}

	f.NextPart()
	typeDigits(f, "32")
	if f.date.Day != 15 {
		t.Fatalf("day 32 applied: %s", f.date)
	}
}

func TestDateFieldLeapYearFebruary(t *testing.T) {
	f := newDateField(model.NewDate(2024, time.February, 10))
	f.ToggleEditing()
	f.NextPart()
	f.NextPart()
	typeDigits(f, "29")
	if f.date.Day != 29 {
		t.Fatalf("Feb 29 rejected in leap year 2024: %s", f.date)
	}

	g := newDateField(model.NewDate(2023, time.February, 10))
	g.ToggleEditing()
	g.NextPart()
	g.NextPart()
	typeDigits(g, "29")
	if g.date.Day != 10 {
		t.Fatalf("Feb 29 accepted in non-leap 2023: %s", g.date)
	}
}

func TestDateFieldBackspaceEditsScratch(t *testing.T) {
	f := newDateField(model.NewDate(2024, time.March, 15))
	f.ToggleEditing()
	typeDigits(f, "202")
	f.Backspace()
	typeDigits(f, "25") // scratch now "2025"
	if f.date.Year != 2025 {
		t.Fatalf("got %s", f.date)
	}
}

func TestDateFieldRenderRoundTrip(t *testing.T) {
	for _, s := range []string{"1900-01-01", "2024-02-29", "2100-12-31", "2031-07-04"} {
		want, err := model.ParseDate(s)
		if err != nil {
			t.Fatal(err)
		}
		f := newDateField(model.NewDate(2000, time.June, 15))
		f.ToggleEditing()
		typeDigits(f, s[:4])
		f.NextPart()
		typeDigits(f, s[5:7])
		f.NextPart()
		typeDigits(f, s[8:10])
		f.ToggleEditing()
		if f.Render() != s {
			t.Errorf("typed %s, rendered %s", s, f.Render())
		}
		if f.date != want {
			t.Errorf("typed %s, date %s", s, f.date)
		}
	}
}

func TestDateFieldRenderWhileEditing(t *testing.T) {
	f := newDateField(model.NewDate(2024, time.March, 15))
	f.ToggleEditing()
	if got := f.Render(); got != "2024[YYYY]-03-15" {
		t.Fatalf("placeholder render: %q", got)
	}
	typeDigits(f, "20")
	if got := f.Render(); got != "2024[20]-03-15" {
		t.Fatalf("scratch render: %q", got)
	}
	f.NextPart()
	if got := f.Render(); got != "2024-03[MM]-15" {
		t.Fatalf("month render: %q", got)
	}
}
