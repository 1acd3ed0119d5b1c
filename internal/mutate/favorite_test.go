package mutate

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"promptdeck/internal/model"
	"promptdeck/internal/store"
)

func newStore(t *testing.T, tasks ...model.Task) store.Store {
	t.Helper()
	s := store.Store{Path: filepath.Join(t.TempDir(), "catalog.sqlite")}
	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, tk := range tasks {
		if err := s.UpsertTask(ctx, tk); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	return s
}

func bufLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.New()
	l.SetOutput(&buf)
	l.SetLevel(log.DebugLevel)
	return l, &buf
}

func TestToggle_TwiceRestoresOriginal(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, model.Task{ID: "t-1", Title: "Meeting Minutes", IsActive: true, IsFavorite: true})
	l, _ := bufLogger()
	f := Favorites{Store: s, Log: l}

	first := f.Toggle(ctx, "t-1")
	if !first.Found || first.IsFavorite {
		t.Fatalf("expected favorite cleared, got %+v", first)
	}
	second := f.Toggle(ctx, " t-1 ")
	if !second.Found || !second.IsFavorite {
		t.Fatalf("expected favorite restored, got %+v", second)
	}
	fav, ok, err := s.FavoriteState(ctx, "t-1")
	if err != nil || !ok || !fav {
		t.Fatalf("expected stored favorite=true, got fav=%v ok=%v err=%v", fav, ok, err)
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	s := newStore(t)
	l, _ := bufLogger()
	f := Favorites{Store: s, Log: l}
	if got := f.Toggle(context.Background(), "missing"); got.Found {
		t.Fatalf("expected not found, got %+v", got)
	}
	if got := f.Toggle(context.Background(), ""); got.Found {
		t.Fatalf("expected not found for empty id, got %+v", got)
	}
	if got := (Favorites{}).Toggle(context.Background(), "t-1"); got.Found {
		t.Fatalf("expected not found without store, got %+v", got)
	}
}

// racyStore simulates another session flipping the task between our read and
// our write.
type racyStore struct {
	stored bool
	reads  int
	writes int
	err    error
}

func (r *racyStore) FavoriteState(ctx context.Context, id string) (bool, bool, error) {
	r.reads++
	if r.err != nil {
		return false, false, r.err
	}
	v := r.stored
	if r.reads == 1 {
		r.stored = !r.stored
	}
	return v, true, nil
}

func (r *racyStore) CompareAndSetFavorite(ctx context.Context, id string, prev, next bool) (bool, error) {
	r.writes++
	if r.stored != prev {
		return false, nil
	}
	r.stored = next
	return true, nil
}

func (r *racyStore) SetFavorite(ctx context.Context, id string, fav bool) (bool, error) {
	r.stored = fav
	return true, nil
}

func TestToggle_LostRaceIsLoggedNotRetried(t *testing.T) {
	rs := &racyStore{stored: false}
	l, buf := bufLogger()

	got := Favorites{Store: rs, Log: l}.Toggle(context.Background(), "t-1")
	if !got.Found || !got.Raced {
		t.Fatalf("expected raced result, got %+v", got)
	}
	if !got.IsFavorite {
		t.Fatalf("expected the concurrently written value to be reported")
	}
	if rs.writes != 1 {
		t.Fatalf("expected a single write attempt, got %d", rs.writes)
	}
	if !strings.Contains(buf.String(), "favorite.toggle.race") {
		t.Fatalf("expected race to be logged, got %q", buf.String())
	}
}

func TestToggle_StoreErrorIsSilent(t *testing.T) {
	l, buf := bufLogger()
	got := Favorites{Store: &racyStore{err: errors.New("locked")}, Log: l}.Toggle(context.Background(), "t-1")
	if got.Found {
		t.Fatalf("expected not found on store error, got %+v", got)
	}
	if !strings.Contains(buf.String(), "favorite.toggle.read_failed") {
		t.Fatalf("expected read failure to be logged, got %q", buf.String())
	}
}

func TestSet_WritesExplicitValue(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, model.Task{ID: "t-1", Title: "A", IsActive: true})
	f := Favorites{Store: s}

	for i := 0; i < 2; i++ {
		ok, err := f.Set(ctx, "t-1", true)
		if err != nil || !ok {
			t.Fatalf("Set: ok=%v err=%v", ok, err)
		}
	}
	if fav, _, _ := s.FavoriteState(ctx, "t-1"); !fav {
		t.Fatalf("expected favorite after repeated set")
	}
	if ok, err := f.Set(ctx, "missing", true); err != nil || ok {
		t.Fatalf("expected unknown id to report false, ok=%v err=%v", ok, err)
	}
}
