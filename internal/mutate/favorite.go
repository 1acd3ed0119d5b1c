package mutate

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
)

// FavoriteStore is the slice of the catalog store the favorite service writes.
type FavoriteStore interface {
	FavoriteState(ctx context.Context, id string) (fav bool, ok bool, err error)
	CompareAndSetFavorite(ctx context.Context, id string, prev, next bool) (swapped bool, err error)
	SetFavorite(ctx context.Context, id string, fav bool) (ok bool, err error)
}

type ToggleResult struct {
	// Found is false for unknown ids and unreadable stores; IsFavorite is then meaningless.
	Found      bool `json:"found"`
	IsFavorite bool `json:"isFavorite"`
	// Raced is set when another writer flipped the task between our read and write.
	Raced bool `json:"raced,omitempty"`
}

type Favorites struct {
	Store FavoriteStore
	Log   *log.Logger
}

// Toggle flips is_favorite for id and returns the persisted value. It is a
// toggle, not a set: calling it twice restores the original value, and a
// retried request flips twice.
//
// Unknown ids and store failures are not errors; they report Found=false.
// The write is a compare-and-set against the value just read. When it loses
// to a concurrent writer the race is logged and the value now in the store is
// reported; there is no retry.
func (f Favorites) Toggle(ctx context.Context, id string) ToggleResult {
	id = strings.TrimSpace(id)
	if f.Store == nil || id == "" {
		return ToggleResult{}
	}
	logger := f.logger().WithField("task_id", id)

	cur, ok, err := f.Store.FavoriteState(ctx, id)
	if err != nil {
		logger.WithError(err).Warn("favorite.toggle.read_failed")
		return ToggleResult{}
	}
	if !ok {
		logger.Debug("favorite.toggle.unknown_task")
		return ToggleResult{}
	}

	next := !cur
	swapped, err := f.Store.CompareAndSetFavorite(ctx, id, cur, next)
	if err != nil {
		logger.WithError(err).Warn("favorite.toggle.write_failed")
		return ToggleResult{}
	}
	if swapped {
		logger.WithField("is_favorite", next).Debug("favorite.toggle")
		return ToggleResult{Found: true, IsFavorite: next}
	}

	now, ok, err := f.Store.FavoriteState(ctx, id)
	logger.WithFields(log.Fields{
		"read":     cur,
		"observed": now,
	}).Warn("favorite.toggle.race")
	if err != nil || !ok {
		return ToggleResult{}
	}
	return ToggleResult{Found: true, IsFavorite: now, Raced: true}
}

// Set writes an explicit favorite value. Unknown ids report false.
func (f Favorites) Set(ctx context.Context, id string, fav bool) (bool, error) {
	id = strings.TrimSpace(id)
	if f.Store == nil || id == "" {
		return false, nil
	}
	return f.Store.SetFavorite(ctx, id, fav)
}

func (f Favorites) logger() *log.Logger {
	if f.Log != nil {
		return f.Log
	}
	return log.StandardLogger()
}
