package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"invoicer-cli/internal/mail"
	"invoicer-cli/internal/model"
	"invoicer-cli/internal/render"
)

// emailField tracks which overlay input has focus. fieldNone is the
// "past the last field" position from which Enter sends.
type emailField int

const (
	fieldRecipient emailField = iota
	fieldSubject
	fieldBody
	fieldNone
)

type emailOverlayResult int

const (
	emailContinue emailOverlayResult = iota
	emailDismiss
)

const sendTimeout = 30 * time.Second

// emailOverlay drives the "email this invoice" flow. Opening it renders the
// invoice documents on disk so the PDF can be attached; those artifacts are
// temporary and Cleanup removes them on every exit path.
type emailOverlay struct {
	invoice model.Invoice
	items   []model.LineItem

	recipient string
	subject   string
	body      string
	field     emailField

	errMsg     string
	successMsg string

	mdPath  string
	pdfPath string

	// generate is retried from send when opening the overlay failed to
	// produce the documents.
	generate func() (mdPath, pdfPath string, err error)

	showPreview bool
	preview     string
	markdown    string

	sender mail.Sender
	log    *slog.Logger
}

func newEmailOverlay(
	inv model.Invoice,
	items []model.LineItem,
	profile model.Profile,
	client model.Client,
	project model.Project,
	gen *render.Generator,
	sender mail.Sender,
	log *slog.Logger,
) *emailOverlay {
	ov := &emailOverlay{
		invoice:   inv,
		items:     items,
		recipient: client.Email,
		subject:   fmt.Sprintf("Invoice #%d for %s", inv.Number, project.Name),
		field:     fieldRecipient,
		sender:    sender,
		log:       log,
	}
	ov.body = defaultEmailBody(inv, items, profile)
	ov.markdown = render.Markdown(inv, items, profile, client, project)
	ov.generate = func() (string, string, error) {
		return gen.Generate(inv, items, profile, client, project)
	}

	if err := ov.generateDocuments(); err != nil {
		ov.errMsg = fmt.Sprintf("Failed to generate invoice files: %v", err)
	}
	return ov
}

func (ov *emailOverlay) generateDocuments() error {
	mdPath, pdfPath, err := ov.generate()
	if err != nil {
		return err
	}
	ov.mdPath = mdPath
	ov.pdfPath = pdfPath
	ov.log.Debug("invoice documents generated", "md", mdPath, "pdf", pdfPath)
	return nil
}

func defaultEmailBody(inv model.Invoice, items []model.LineItem, profile model.Profile) string {
	return fmt.Sprintf(
		"Dear Client,\n\n"+
			"Please find attached the invoice #%d for our recent work.\n\n"+
			"Invoice Number: %d\n"+
			"Submit Date: %s\n"+
			"Due Date: %s\n"+
			"Total Amount: $%.2f\n\n"+
			"Thank you for your business.\n"+
			"Please let me know if you have any questions.\n\n"+
			"Regards,\n%s",
		inv.Number, inv.Number, inv.SubmitDate, inv.DueDate,
		inv.Total(items), profile.Name,
	)
}

// Cleanup removes the generated documents. It is idempotent: paths are
// cleared after removal so repeated calls are no-ops, and a file already
// gone is not an error.
func (ov *emailOverlay) Cleanup() {
	for _, p := range []*string{&ov.mdPath, &ov.pdfPath} {
		if *p == "" {
			continue
		}
		if err := os.Remove(*p); err != nil && !os.IsNotExist(err) {
			ov.log.Warn("could not remove temporary invoice file", "path", *p, "error", err)
		}
		*p = ""
	}
}

func (ov *emailOverlay) validate() string {
	if ov.recipient == "" {
		return "Recipient email cannot be empty"
	}
	if !strings.Contains(ov.recipient, "@") {
		return "Invalid email address"
	}
	if ov.subject == "" {
		return "Subject cannot be empty"
	}
	return ""
}

func (ov *emailOverlay) Update(msg tea.KeyMsg) emailOverlayResult {
	// Popups swallow the next key: success dismisses the overlay, error
	// returns to editing.
	if ov.successMsg != "" {
		ov.Cleanup()
		return emailDismiss
	}
	if ov.errMsg != "" {
		ov.errMsg = ""
		return emailContinue
	}

	switch msg.Type {
	case tea.KeyEsc:
		ov.Cleanup()
		return emailDismiss
	case tea.KeyTab:
		ov.nextField()
	case tea.KeyShiftTab:
		ov.previousField()
	case tea.KeyCtrlP:
		ov.togglePreview()
	case tea.KeyEnter:
		if ov.field == fieldNone {
			ov.send()
		} else {
			ov.nextField()
		}
	case tea.KeyBackspace:
		ov.edit(trimLastRune)
	case tea.KeySpace:
		ov.edit(func(s string) string { return s + " " })
	case tea.KeyRunes:
		ov.edit(func(s string) string { return s + string(msg.Runes) })
	}
	return emailContinue
}

func (ov *emailOverlay) nextField() {
	if ov.field == fieldNone {
		ov.field = fieldRecipient
		return
	}
	ov.field++
}

func (ov *emailOverlay) previousField() {
	if ov.field == fieldRecipient {
		ov.field = fieldNone
		return
	}
	ov.field--
}

func (ov *emailOverlay) edit(f func(string) string) {
	switch ov.field {
	case fieldRecipient:
		ov.recipient = f(ov.recipient)
	case fieldSubject:
		ov.subject = f(ov.subject)
	case fieldBody:
		ov.body = f(ov.body)
	}
}

func (ov *emailOverlay) send() {
	if m := ov.validate(); m != "" {
		ov.errMsg = m
		return
	}
	if ov.pdfPath == "" {
		if err := ov.generateDocuments(); err != nil {
			ov.errMsg = fmt.Sprintf("Failed to generate invoice files: %v", err)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	err := ov.sender.Send(ctx, mail.Message{
		To:             ov.recipient,
		Subject:        ov.subject,
		Body:           ov.body,
		AttachmentPath: ov.pdfPath,
	})
	if err != nil {
		ov.log.Error("sending invoice email failed", "invoice", ov.invoice.Number, "error", err)
		ov.errMsg = fmt.Sprintf("Failed to send email: %v", err)
		return
	}
	ov.log.Info("invoice email sent", "invoice", ov.invoice.Number, "to", ov.recipient)
	ov.successMsg = fmt.Sprintf("Invoice #%d sent to %s", ov.invoice.Number, ov.recipient)
}

func (ov *emailOverlay) togglePreview() {
	if ov.showPreview {
		ov.showPreview = false
		return
	}
	if ov.preview == "" {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(76))
		if err == nil {
			if out, rerr := r.Render(ov.markdown); rerr == nil {
				ov.preview = out
			}
		}
		if ov.preview == "" {
			ov.preview = ov.markdown
		}
	}
	ov.showPreview = true
}

func (ov *emailOverlay) View() string {
	if ov.successMsg != "" {
		return renderPopup("Success", styleSuccess().Render(ov.successMsg))
	}
	if ov.errMsg != "" {
		return renderPopup("Error", styleError().Render(ov.errMsg))
	}
	if ov.showPreview {
		return styleTitle().Render("Invoice Preview") + "\n\n" + ov.preview +
			"\n" + styleMuted().Render("ctrl+p: back to email")
	}

	var b strings.Builder
	b.WriteString(styleTitle().Render(fmt.Sprintf("Email Invoice #%d", ov.invoice.Number)))
	b.WriteString("\n\n")
	b.WriteString(ov.renderField("Recipient Email", ov.recipient, fieldRecipient))
	b.WriteString(ov.renderField("Subject", ov.subject, fieldSubject))
	b.WriteString(ov.renderField("Message", ov.body, fieldBody))
	help := "tab: next field · shift+tab: previous · enter: send · ctrl+p: preview · esc: cancel"
	if ov.field == fieldNone {
		help = "enter: send · shift+tab: back to fields · ctrl+p: preview · esc: cancel"
	}
	b.WriteString("\n" + styleMuted().Render(help))
	return b.String()
}

func (ov *emailOverlay) renderField(label, value string, f emailField) string {
	styled := label
	if ov.field == f {
		styled = styleFieldFocus().Render(label)
		value += "▏"
	}
	if strings.Contains(value, "\n") {
		var b strings.Builder
		b.WriteString(styled + ":\n")
		for _, line := range strings.Split(value, "\n") {
			b.WriteString("  " + line + "\n")
		}
		return b.String()
	}
	return fmt.Sprintf("%s: %s\n", styled, value)
}
