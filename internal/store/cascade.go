package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Cascading deletes. Each delete removes the full subtree beneath the node in
// one transaction, children before parents so the foreign keys never dangle.
// Any failure rolls back the whole cascade.

// DeleteProfile removes the profile and every client, project, invoice and
// line item beneath it.
func (s *Store) DeleteProfile(ctx context.Context, id int64) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		clientIDs, err := childIDs(ctx, tx, `SELECT id FROM clients WHERE profile_id = ?`, id)
		if err != nil {
			return err
		}
		for _, clientID := range clientIDs {
			if err := deleteClientTx(ctx, tx, clientID); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete profile %d: %w", id, err)
		}
		return nil
	})
}

// DeleteClient removes the client and every project, invoice and line item
// beneath it.
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		return deleteClientTx(ctx, tx, id)
	})
}

// DeleteProject removes the project and every invoice and line item beneath it.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		return deleteProjectTx(ctx, tx, id)
	})
}

// DeleteInvoice removes the invoice and its line items.
func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		return deleteInvoiceTx(ctx, tx, id)
	})
}

func deleteClientTx(ctx context.Context, tx *sql.Tx, id int64) error {
	projectIDs, err := childIDs(ctx, tx, `SELECT id FROM projects WHERE client_id = ?`, id)
	if err != nil {
		return err
	}
	for _, projectID := range projectIDs {
		if err := deleteProjectTx(ctx, tx, projectID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

func deleteProjectTx(ctx context.Context, tx *sql.Tx, id int64) error {
	invoiceIDs, err := childIDs(ctx, tx, `SELECT id FROM invoices WHERE project_id = ?`, id)
	if err != nil {
		return err
	}
	for _, invoiceID := range invoiceIDs {
		if err := deleteInvoiceTx(ctx, tx, invoiceID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return nil
}

func deleteInvoiceTx(ctx context.Context, tx *sql.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE invoice_id = ?`, id); err != nil {
		return fmt.Errorf("delete line items for invoice %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	return nil
}

func childIDs(ctx context.Context, tx *sql.Tx, query string, parentID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
