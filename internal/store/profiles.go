package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invoicer-cli/internal/model"
)

func (s *Store) Profiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, address, email, bank_name, bank_account, routing_number
		FROM profiles ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Profile(ctx context.Context, id int64) (model.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address, email, bank_name, bank_account, routing_number
		FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *Store) InsertProfile(ctx context.Context, p model.Profile) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (name, phone, address, email, bank_name, bank_account, routing_number)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Phone, p.Address, p.Email, p.BankName, p.BankAccount, p.RoutingNumber)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) UpdateProfile(ctx context.Context, p model.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET name = ?, phone = ?, address = ?, email = ?, bank_name = ?, bank_account = ?, routing_number = ?
		WHERE id = ?`,
		p.Name, p.Phone, p.Address, p.Email, p.BankName, p.BankAccount, p.RoutingNumber, p.ID)
	if err != nil {
		return fmt.Errorf("update profile %d: %w", p.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(r rowScanner) (model.Profile, error) {
	var p model.Profile
	var address sql.NullString
	err := r.Scan(&p.ID, &p.Name, &p.Phone, &address, &p.Email, &p.BankName, &p.BankAccount, &p.RoutingNumber)
	if err != nil {
		return model.Profile{}, err
	}
	if address.Valid {
		p.Address = &address.String
	}
	return p, nil
}
