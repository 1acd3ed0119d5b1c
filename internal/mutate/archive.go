package mutate

import (
	"context"
	"strings"
)

type ActiveStore interface {
	ActiveState(ctx context.Context, id string) (active bool, ok bool, err error)
	SetActive(ctx context.Context, id string, active bool) (ok bool, err error)
}

type ArchiveResult struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
	Changed  bool   `json:"changed"`
}

// SetTaskArchived soft-deletes (or restores) a task. Archived tasks drop out
// of every listing but keep their row.
func SetTaskArchived(ctx context.Context, s ActiveStore, id string, archived bool) (ArchiveResult, error) {
	id = strings.TrimSpace(id)
	if s == nil || id == "" {
		return ArchiveResult{}, NotFoundError{Kind: "task", ID: id}
	}
	active, ok, err := s.ActiveState(ctx, id)
	if err != nil {
		return ArchiveResult{}, err
	}
	if !ok {
		return ArchiveResult{}, NotFoundError{Kind: "task", ID: id}
	}
	if active == !archived {
		return ArchiveResult{ID: id, Archived: archived, Changed: false}, nil
	}
	if _, err := s.SetActive(ctx, id, !archived); err != nil {
		return ArchiveResult{}, err
	}
	return ArchiveResult{ID: id, Archived: archived, Changed: true}, nil
}
