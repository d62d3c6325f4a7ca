package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invoicer-cli/internal/model"
)

func (s *Store) Projects(ctx context.Context, clientID int64) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_id, name, start_date, end_date
		FROM projects WHERE client_id = ? ORDER BY start_date, id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list projects for client %d: %w", clientID, err)
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Project(ctx context.Context, id int64) (model.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, name, start_date, end_date
		FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *Store) InsertProject(ctx context.Context, p model.Project) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (client_id, name, start_date, end_date)
		VALUES (?, ?, ?, ?)`,
		p.ClientID, p.Name, p.StartDate.String(), endDateText(p.EndDate))
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) UpdateProject(ctx context.Context, p model.Project) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, start_date = ?, end_date = ? WHERE id = ?`,
		p.Name, p.StartDate.String(), endDateText(p.EndDate), p.ID)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	return nil
}

func endDateText(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanProject(r rowScanner) (model.Project, error) {
	var p model.Project
	var start string
	var end sql.NullString
	if err := r.Scan(&p.ID, &p.ClientID, &p.Name, &start, &end); err != nil {
		return model.Project{}, err
	}
	d, err := model.ParseDate(start)
	if err != nil {
		return model.Project{}, fmt.Errorf("project %d start date: %w", p.ID, err)
	}
	p.StartDate = d
	if end.Valid && end.String != "" {
		ed, err := model.ParseDate(end.String)
		if err != nil {
			return model.Project{}, fmt.Errorf("project %d end date: %w", p.ID, err)
		}
		p.EndDate = &ed
	}
	return p, nil
}
