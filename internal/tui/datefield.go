package tui

import (
	"strconv"
	"time"

	"invoicer-cli/internal/model"
)

type datePart int

const (
	partYear datePart = iota
	partMonth
	partDay
)

// dateField edits a calendar date one part at a time. Digits accumulate in a
// scratch buffer; when the buffer reaches the part's width (4 for year, 2 for
// month/day) it is parsed and applied only if the result is a real date
// within bounds (years 1900..2100). Out-of-bounds input is discarded.
type dateField struct {
	date    model.Date
	editing bool
	part    datePart
	scratch string
}

func newDateField(d model.Date) *dateField {
	return &dateField{date: d}
}

func (f *dateField) Date() model.Date { return f.date }
func (f *dateField) Editing() bool    { return f.editing }

// ToggleEditing enters or leaves edit mode. Entering always resets focus to
// the year and clears the scratch buffer.
func (f *dateField) ToggleEditing() {
	f.editing = !f.editing
	if f.editing {
		f.part = partYear
		f.scratch = ""
	}
}

func (f *dateField) NextPart() {
	switch f.part {
	case partYear:
		f.part = partMonth
	case partMonth:
		f.part = partDay
	case partDay:
		f.part = partYear
	}
	f.scratch = ""
}

func (f *dateField) PreviousPart() {
	switch f.part {
	case partYear:
		f.part = partDay
	case partMonth:
		f.part = partYear
	case partDay:
		f.part = partMonth
	}
	f.scratch = ""
}

func (f *dateField) Backspace() {
	if n := len(f.scratch); n > 0 {
		f.scratch = f.scratch[:n-1]
	}
}

func (f *dateField) partWidth() int {
	if f.part == partYear {
		return 4
	}
	return 2
}

// InputDigit appends one digit to the scratch buffer and commits the part
// once the buffer is full. Invalid values are silently dropped; the buffer is
// cleared either way.
func (f *dateField) InputDigit(c rune) {
	if !f.editing || c < '0' || c > '9' {
		return
	}
	f.scratch += string(c)

	width := f.partWidth()
	if len(f.scratch) > width {
		f.scratch = f.scratch[len(f.scratch)-width:]
	}
	if len(f.scratch) < width {
		return
	}

	n, err := strconv.Atoi(f.scratch)
	f.scratch = ""
	if err != nil {
		return
	}

	next := f.date
	switch f.part {
	case partYear:
		if n < 1900 || n > 2100 {
			return
		}
		next.Year = n
	case partMonth:
		if n < 1 || n > 12 {
			return
		}
		next.Month = time.Month(n)
	case partDay:
		if n < 1 || n > model.DaysInMonth(f.date.Year, f.date.Month) {
			return
		}
		next.Day = n
	}
	if next.Valid() {
		f.date = next
	}
}

// Render shows YYYY-MM-DD; while editing, the focused part gets a bracketed
// scratch-or-placeholder suffix so the user can see what they are typing.
func (f *dateField) Render() string {
	if !f.editing {
		return f.date.String()
	}

	marker := "[" + f.scratch + "]"
	if f.scratch == "" {
		switch f.part {
		case partYear:
			marker = "[YYYY]"
		case partMonth:
			marker = "[MM]"
		case partDay:
			marker = "[DD]"
		}
	}

	y := padInt(f.date.Year, 4)
	mo := padInt(int(f.date.Month), 2)
	d := padInt(f.date.Day, 2)
	switch f.part {
	case partYear:
		return y + marker + "-" + mo + "-" + d
	case partMonth:
		return y + "-" + mo + marker + "-" + d
	default:
		return y + "-" + mo + "-" + d + marker
	}
}

func padInt(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
