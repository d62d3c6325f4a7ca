package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invoicer-cli/internal/model"
)

func (s *Store) Clients(ctx context.Context, profileID int64) ([]model.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, name, phone, address, email
		FROM clients WHERE profile_id = ? ORDER BY name, id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list clients for profile %d: %w", profileID, err)
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Client(ctx context.Context, id int64) (model.Client, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, name, phone, address, email
		FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return c, err
}

func (s *Store) InsertClient(ctx context.Context, c model.Client) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (profile_id, name, phone, address, email)
		VALUES (?, ?, ?, ?, ?)`,
		c.ProfileID, c.Name, c.Phone, c.Address, c.Email)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) UpdateClient(ctx context.Context, c model.Client) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE clients SET name = ?, phone = ?, address = ?, email = ? WHERE id = ?`,
		c.Name, c.Phone, c.Address, c.Email, c.ID)
	if err != nil {
		return fmt.Errorf("update client %d: %w", c.ID, err)
	}
	return nil
}

func scanClient(r rowScanner) (model.Client, error) {
	var c model.Client
	var address sql.NullString
	err := r.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Phone, &address, &c.Email)
	if err != nil {
		return model.Client{}, err
	}
	if address.Valid {
		c.Address = &address.String
	}
	return c, nil
}
