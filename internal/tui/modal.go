package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const modalWidth = 56

func modalBodyWidth(width int) int {
	w := width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox draws a titled, bordered box. Body lines longer than the
// box are truncated on the display side only; the underlying state is never
// clipped.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeader).
		Width(bodyW).
		Render(title)

	var lines []string
	for _, line := range strings.Split(header+"\n\n"+content, "\n") {
		lines = append(lines, ansi.Truncate(line, bodyW, "…"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalBorder).
		Padding(0, 1).
		Width(bodyW + 2)
	return box.Render(strings.Join(lines, "\n"))
}

// renderPopup is the simple variant used for transient error/success
// messages: any key dismisses it.
func renderPopup(title string, body string) string {
	content := body + "\n\n" + styleMuted().Render("Press any key to continue")
	return renderModalBox(modalWidth, title, content)
}

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusConfirm
)

func renderConfirmModal(width int, title, body string, focus confirmFocus) string {
	// Avoid borders around the buttons: some terminals show background
	// artifacts when nesting bordered components inside a modal.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render("Delete")
	} else {
		cancel = btnActive.Render("Cancel")
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	help := styleMuted().Render("tab: focus · enter: select · y: delete · esc/n: cancel")

	content := strings.Join([]string{body, "", controls, "", help}, "\n")
	return renderModalBox(width, title, content)
}
