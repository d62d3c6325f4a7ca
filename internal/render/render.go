// Package render generates invoice documents: a Markdown source and a PDF
// produced by pandoc when available. When pandoc is missing or fails, the
// Markdown content is copied to the PDF path so callers always get two valid
// paths to work with (the copy is attached as text/plain).
package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"invoicer-cli/internal/model"
)

// Generator writes invoice documents into a fixed output directory.
type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) (*Generator, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Generator{outputDir: outputDir}, nil
}

// Generate renders the invoice and returns the Markdown and PDF paths.
func (g *Generator) Generate(inv model.Invoice, items []model.LineItem, profile model.Profile, client model.Client, project model.Project) (mdPath, pdfPath string, err error) {
	md := Markdown(inv, items, profile, client, project)

	mdPath = filepath.Join(g.outputDir, fmt.Sprintf("invoice_%d.md", inv.Number))
	pdfPath = filepath.Join(g.outputDir, fmt.Sprintf("invoice_%d.pdf", inv.Number))

	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", "", fmt.Errorf("write markdown: %w", err)
	}

	if err := exec.Command("pandoc", mdPath, "-o", pdfPath).Run(); err != nil {
		// Plain-text fallback keeps the attachment path valid.
		if err := os.WriteFile(pdfPath, []byte(md), 0o644); err != nil {
			return "", "", fmt.Errorf("write pdf fallback: %w", err)
		}
	}

	return mdPath, pdfPath, nil
}

// Markdown produces the invoice document source: biller header, payment
// details with bank account and routing number, and a line-item table with
// the grand total.
func Markdown(inv model.Invoice, items []model.LineItem, profile model.Profile, client model.Client, project model.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", profile.Name)
	if profile.Address != nil && *profile.Address != "" {
		fmt.Fprintf(&b, "%s\n", *profile.Address)
	}
	fmt.Fprintf(&b, "%s\n\n", profile.Phone)

	b.WriteString("# Invoice\n")
	fmt.Fprintf(&b, "Submitted on %s\n\n", inv.SubmitDate)

	fmt.Fprintf(&b, "**Invoice for** %s (%s)\n\n", client.Name, project.Name)
	fmt.Fprintf(&b, "**Payable to** %s\n\n", profile.Name)
	fmt.Fprintf(&b, "**Bank** %s\n\n", profile.BankName)
	fmt.Fprintf(&b, "**Account Number** %s\n\n", profile.BankAccount)
	fmt.Fprintf(&b, "**Routing Number** %s\n\n", profile.RoutingNumber)
	fmt.Fprintf(&b, "**Invoice #** %d\n\n", inv.Number)
	fmt.Fprintf(&b, "**Due** %s\n\n", inv.DueDate)

	b.WriteString("---\n\n")
	b.WriteString("| Description | Hours | Hourly rate | Total price |\n")
	b.WriteString("|:---|---:|---:|---:|\n")
	for _, li := range items {
		fmt.Fprintf(&b, "| %s | %v | $%.2f | $%.2f |\n",
			li.Description, li.Hours, inv.Rate, li.Amount(inv.Rate))
	}
	fmt.Fprintf(&b, "| **Total** | %v | | **$%.2f** |\n",
		model.TotalHours(items), inv.Total(items))

	return b.String()
}
