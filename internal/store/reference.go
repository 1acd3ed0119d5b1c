package store

import (
	"context"
	"errors"
	"strings"

	"promptdeck/internal/model"
)

// ListDivisions returns active divisions in sort order.
func (s Store) ListDivisions(ctx context.Context) ([]model.Division, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, full_title, icon, sort_order, is_active
		FROM divisions WHERE is_active = 1 ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Division{}
	for rows.Next() {
		var d model.Division
		var active int
		if err := rows.Scan(&d.ID, &d.Name, &d.FullTitle, &d.Icon, &d.SortOrder, &active); err != nil {
			return nil, err
		}
		d.IsActive = active != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListCategories returns active categories in sort order. A division other than
// "All" keeps only categories whose division list mentions it.
func (s Store) ListCategories(ctx context.Context, division string) ([]model.Category, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT id, name, divisions, icon, sort_order, is_active FROM categories WHERE is_active = 1`
	var args []any
	if !model.IsAll(division) {
		query += ` AND ` + foldLike("divisions")
		args = append(args, likePattern(fold(strings.TrimSpace(division))))
	}
	query += ` ORDER BY sort_order, name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		var active int
		if err := rows.Scan(&c.ID, &c.Name, &c.Divisions, &c.Icon, &c.SortOrder, &active); err != nil {
			return nil, err
		}
		c.IsActive = active != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s Store) UpsertDivision(ctx context.Context, d model.Division) error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("upsert division: missing name")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO divisions(name, full_title, icon, sort_order, is_active)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			full_title = excluded.full_title,
			icon = excluded.icon,
			sort_order = excluded.sort_order,
			is_active = excluded.is_active`,
		strings.TrimSpace(d.Name), d.FullTitle, d.Icon, d.SortOrder, boolToInt(d.IsActive))
	return err
}

func (s Store) UpsertCategory(ctx context.Context, c model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("upsert category: missing name")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO categories(name, divisions, icon, sort_order, is_active)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			divisions = excluded.divisions,
			icon = excluded.icon,
			sort_order = excluded.sort_order,
			is_active = excluded.is_active`,
		strings.TrimSpace(c.Name), c.Divisions, c.Icon, c.SortOrder, boolToInt(c.IsActive))
	return err
}
