package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invoicer-cli/internal/model"
)

func (s *Store) Invoices(ctx context.Context, projectID int64) ([]model.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, number, submit_date, due_date, rate, status
		FROM invoices WHERE project_id = ? ORDER BY number, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list invoices for project %d: %w", projectID, err)
	}
	defer rows.Close()

	var out []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *Store) Invoice(ctx context.Context, id int64) (model.Invoice, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, number, submit_date, due_date, rate, status
		FROM invoices WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Invoice{}, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return inv, err
}

func (s *Store) LineItems(ctx context.Context, invoiceID int64) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, invoice_id, description, hours
		FROM line_items WHERE invoice_id = ? ORDER BY id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list line items for invoice %d: %w", invoiceID, err)
	}
	defer rows.Close()

	var out []model.LineItem
	for rows.Next() {
		var li model.LineItem
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Hours); err != nil {
			return nil, err
		}
		out = append(out, li)
	}
	return out, rows.Err()
}

// InvoiceWithItems loads an invoice together with its line items.
func (s *Store) InvoiceWithItems(ctx context.Context, id int64) (model.Invoice, []model.LineItem, error) {
	inv, err := s.Invoice(ctx, id)
	if err != nil {
		return model.Invoice{}, nil, err
	}
	items, err := s.LineItems(ctx, id)
	if err != nil {
		return model.Invoice{}, nil, err
	}
	return inv, items, nil
}

// SaveInvoice writes the invoice and its full line-item set in one
// transaction: insert when inv.ID is 0, otherwise update. The stored line
// items are replaced wholesale so the set matches the wizard's draft exactly.
func (s *Store) SaveInvoice(ctx context.Context, inv model.Invoice, items []model.LineItem) (int64, error) {
	id := inv.ID
	err := s.tx(ctx, func(tx *sql.Tx) error {
		if id == 0 {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO invoices (project_id, number, submit_date, due_date, rate, status)
				VALUES (?, ?, ?, ?, ?, ?)`,
				inv.ProjectID, inv.Number, inv.SubmitDate.String(), inv.DueDate.String(), inv.Rate, inv.Status)
			if err != nil {
				return fmt.Errorf("insert invoice: %w", err)
			}
			newID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			id = newID
		} else {
			_, err := tx.ExecContext(ctx, `
				UPDATE invoices SET number = ?, submit_date = ?, due_date = ?, rate = ?, status = ?
				WHERE id = ?`,
				inv.Number, inv.SubmitDate.String(), inv.DueDate.String(), inv.Rate, inv.Status, id)
			if err != nil {
				return fmt.Errorf("update invoice %d: %w", id, err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE invoice_id = ?`, id); err != nil {
				return fmt.Errorf("clear line items for invoice %d: %w", id, err)
			}
		}
		for _, li := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO line_items (invoice_id, description, hours) VALUES (?, ?, ?)`,
				id, li.Description, li.Hours)
			if err != nil {
				return fmt.Errorf("insert line item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteLineItem removes a single line item without touching its invoice.
func (s *Store) DeleteLineItem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM line_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete line item %d: %w", id, err)
	}
	return nil
}

// NextInvoiceNumber returns one more than the highest number used by the
// project's invoices, starting at 1.
func (s *Store) NextInvoiceNumber(ctx context.Context, projectID int64) (int64, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(number) FROM invoices WHERE project_id = ?`, projectID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next invoice number for project %d: %w", projectID, err)
	}
	return max.Int64 + 1, nil
}

func scanInvoice(r rowScanner) (model.Invoice, error) {
	var inv model.Invoice
	var submit, due string
	if err := r.Scan(&inv.ID, &inv.ProjectID, &inv.Number, &submit, &due, &inv.Rate, &inv.Status); err != nil {
		return model.Invoice{}, err
	}
	var err error
	if inv.SubmitDate, err = model.ParseDate(submit); err != nil {
		return model.Invoice{}, fmt.Errorf("invoice %d submit date: %w", inv.ID, err)
	}
	if inv.DueDate, err = model.ParseDate(due); err != nil {
		return model.Invoice{}, fmt.Errorf("invoice %d due date: %w", inv.ID, err)
	}
	return inv, nil
}
