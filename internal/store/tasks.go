package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"promptdeck/internal/model"
)

// TaskQuery is the predicate set the store can push down to SQL.
// Empty fields (and model.AllValue) disable the corresponding predicate.
type TaskQuery struct {
	Division      string
	Category      string
	Search        string
	FavoritesOnly bool
	CreatedBy     string
}

const taskColumns = `task_id, title, description, division, category, is_favorite, is_active,
	priority, due_date, tags, refs, ai_suggestions, prompt_default, created_by`

// ListTasks returns active tasks matching q, ordered by title (case-insensitive).
func (s Store) ListTasks(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE is_active = 1`
	var args []any
	if !model.IsAll(q.Division) {
		query += ` AND ` + foldLike("division")
		args = append(args, likePattern(fold(strings.TrimSpace(q.Division))))
	}
	if !model.IsAll(q.Category) {
		query += ` AND ` + foldLike("category")
		args = append(args, likePattern(fold(strings.TrimSpace(q.Category))))
	}
	if term := fold(strings.TrimSpace(q.Search)); term != "" {
		query += ` AND (` + foldLike("title") + ` OR ` + foldLike("description") + `)`
		args = append(args, likePattern(term), likePattern(term))
	}
	if q.FavoritesOnly {
		query += ` AND is_favorite = 1`
	}
	if by := strings.TrimSpace(q.CreatedBy); by != "" {
		query += ` AND created_by = ?`
		args = append(args, by)
	}
	query += ` ORDER BY title COLLATE NOCASE, task_id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTask returns the active task with the given id. ok is false when absent.
func (s Store) GetTask(ctx context.Context, id string) (model.Task, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Task{}, false, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Task{}, false, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id = ? AND is_active = 1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, false, nil
	}
	if err != nil {
		return model.Task{}, false, err
	}
	return t, true, nil
}

func (s Store) CountTasks(ctx context.Context) (int, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tasks WHERE is_active = 1`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpsertTask inserts t or replaces every column of the existing row.
func (s Store) UpsertTask(ctx context.Context, t model.Task) error {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		return errors.New("upsert task: missing id")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("upsert task %s: missing title", t.ID)
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO tasks(`+taskColumns+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			division = excluded.division,
			category = excluded.category,
			is_favorite = excluded.is_favorite,
			is_active = excluded.is_active,
			priority = excluded.priority,
			due_date = excluded.due_date,
			tags = excluded.tags,
			refs = excluded.refs,
			ai_suggestions = excluded.ai_suggestions,
			prompt_default = excluded.prompt_default,
			created_by = excluded.created_by`,
		t.ID, t.Title, t.Description, t.Division, t.Category,
		boolToInt(t.IsFavorite), boolToInt(t.IsActive),
		t.Priority, t.DueDate, t.Tags, t.References, t.AISuggestions, t.PromptDefault,
		strings.TrimSpace(t.CreatedBy),
	)
	return err
}

// FavoriteState reads is_favorite for id regardless of is_active.
func (s Store) FavoriteState(ctx context.Context, id string) (bool, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, false, err
	}
	defer db.Close()

	var v int
	err = db.QueryRowContext(ctx, `SELECT is_favorite FROM tasks WHERE task_id = ?`, strings.TrimSpace(id)).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return v != 0, true, nil
}

// SetFavorite writes is_favorite unconditionally. ok is false when no row matched.
func (s Store) SetFavorite(ctx context.Context, id string, fav bool) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `UPDATE tasks SET is_favorite = ? WHERE task_id = ?`, boolToInt(fav), strings.TrimSpace(id))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CompareAndSetFavorite writes next only if the stored value still equals prev.
// swapped is false when another writer changed the row in between.
func (s Store) CompareAndSetFavorite(ctx context.Context, id string, prev, next bool) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `UPDATE tasks SET is_favorite = ? WHERE task_id = ? AND is_favorite = ?`,
		boolToInt(next), strings.TrimSpace(id), boolToInt(prev))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ActiveState reads is_active for id. ok is false when the row does not exist.
func (s Store) ActiveState(ctx context.Context, id string) (bool, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, false, err
	}
	defer db.Close()

	var v int
	err = db.QueryRowContext(ctx, `SELECT is_active FROM tasks WHERE task_id = ?`, strings.TrimSpace(id)).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return v != 0, true, nil
}

// SetActive soft-deletes (false) or restores (true) a task.
func (s Store) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `UPDATE tasks SET is_active = ? WHERE task_id = ?`, boolToInt(active), strings.TrimSpace(id))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (model.Task, error) {
	var t model.Task
	var fav, active int
	if err := r.Scan(
		&t.ID, &t.Title, &t.Description, &t.Division, &t.Category, &fav, &active,
		&t.Priority, &t.DueDate, &t.Tags, &t.References, &t.AISuggestions, &t.PromptDefault, &t.CreatedBy,
	); err != nil {
		return model.Task{}, err
	}
	t.IsFavorite = fav != 0
	t.IsActive = active != 0
	return t, nil
}
