package store

import (
	"context"
	"path/filepath"
	"testing"

	"promptdeck/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s := Store{Path: filepath.Join(t.TempDir(), "catalog.sqlite")}
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

func mustUpsert(t *testing.T, s Store, tasks ...model.Task) {
	t.Helper()
	for _, tk := range tasks {
		if err := s.UpsertTask(context.Background(), tk); err != nil {
			t.Fatalf("upsert %s: %v", tk.ID, err)
		}
	}
}

func taskIDs(ts []model.Task) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestListTasks_DivisionMembership(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		model.Task{ID: "1", Title: "Meeting Minutes", Division: "NCA,VBA,VHA", IsActive: true},
		model.Task{ID: "2", Title: "Claim Letter", Division: "VBA", IsActive: true},
	)

	got, err := s.ListTasks(context.Background(), TaskQuery{Division: "VHA"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if ids := taskIDs(got); len(ids) != 1 || ids[0] != "1" {
		t.Fatalf("expected only task 1, got %v", ids)
	}

	all, err := s.ListTasks(context.Background(), TaskQuery{Division: model.AllValue})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks for All, got %d", len(all))
	}
}

func TestListTasks_SearchOrderingAndInactive(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		model.Task{ID: "a", Title: "policy Summary", Description: "Summarize policies", IsActive: true},
		model.Task{ID: "b", Title: "Meeting Minutes", Description: "From a transcript", IsActive: true},
		model.Task{ID: "c", Title: "Archived meeting", IsActive: false},
		model.Task{ID: "d", Title: "Agenda", Description: "Plan the next MEETING", IsActive: true},
	)

	got, err := s.ListTasks(context.Background(), TaskQuery{Search: "meeting"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if ids := taskIDs(got); len(ids) != 2 || ids[0] != "d" || ids[1] != "b" {
		t.Fatalf("expected [d b], got %v", ids)
	}

	all, err := s.ListTasks(context.Background(), TaskQuery{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if ids := taskIDs(all); len(ids) != 3 || ids[0] != "d" || ids[1] != "b" || ids[2] != "a" {
		t.Fatalf("expected case-insensitive title order [d b a], got %v", ids)
	}
}

func TestListTasks_SearchEscapesLikeMetacharacters(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		model.Task{ID: "1", Title: "Cut costs 100%", IsActive: true},
		model.Task{ID: "2", Title: "Budget 1000", IsActive: true},
	)

	got, err := s.ListTasks(context.Background(), TaskQuery{Search: "100%"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if ids := taskIDs(got); len(ids) != 1 || ids[0] != "1" {
		t.Fatalf("expected only task 1, got %v", ids)
	}
}

func TestListTasks_FavoritesAndOwner(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		model.Task{ID: "1", Title: "A", IsFavorite: true, CreatedBy: "alice", IsActive: true},
		model.Task{ID: "2", Title: "B", IsFavorite: false, CreatedBy: "alice", IsActive: true},
		model.Task{ID: "3", Title: "C", IsFavorite: true, CreatedBy: "bob", IsActive: true},
	)

	got, err := s.ListTasks(context.Background(), TaskQuery{FavoritesOnly: true, CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if ids := taskIDs(got); len(ids) != 1 || ids[0] != "1" {
		t.Fatalf("expected only task 1, got %v", ids)
	}
}

func TestGetTaskAndFavoriteWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUpsert(t, s, model.Task{ID: "1", Title: "A", IsActive: true})

	if _, ok, err := s.GetTask(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing task to be absent, ok=%v err=%v", ok, err)
	}

	swapped, err := s.CompareAndSetFavorite(ctx, "1", false, true)
	if err != nil || !swapped {
		t.Fatalf("expected swap, swapped=%v err=%v", swapped, err)
	}
	swapped, err = s.CompareAndSetFavorite(ctx, "1", false, true)
	if err != nil || swapped {
		t.Fatalf("expected stale compare to fail, swapped=%v err=%v", swapped, err)
	}

	got, ok, err := s.GetTask(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !got.IsFavorite {
		t.Fatalf("expected favorite after swap")
	}

	if ok, err := s.SetFavorite(ctx, "missing", true); err != nil || ok {
		t.Fatalf("expected no row for missing id, ok=%v err=%v", ok, err)
	}
	n, err := s.CountTasks(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected count 1, got %d err=%v", n, err)
	}
}

func TestListCategories_ByDivision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, c := range []model.Category{
		{Name: "Medical", Divisions: "VHA", SortOrder: 7, IsActive: true},
		{Name: "Administrative", Divisions: "NCA,VBA,VHA", SortOrder: 1, IsActive: true},
		{Name: "Retired", Divisions: "VBA", SortOrder: 2, IsActive: false},
	} {
		if err := s.UpsertCategory(ctx, c); err != nil {
			t.Fatalf("upsert category: %v", err)
		}
	}

	vba, err := s.ListCategories(ctx, "VBA")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(vba) != 1 || vba[0].Name != "Administrative" {
		t.Fatalf("unexpected VBA categories: %+v", vba)
	}

	all, err := s.ListCategories(ctx, model.AllValue)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Administrative" || all[1].Name != "Medical" {
		t.Fatalf("unexpected category order: %+v", all)
	}
}

func TestListDivisions_SortOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, d := range []model.Division{
		{Name: "NCA", SortOrder: 3, IsActive: true},
		{Name: "VHA", SortOrder: 1, IsActive: true},
		{Name: "VBA", SortOrder: 2, IsActive: true},
	} {
		if err := s.UpsertDivision(ctx, d); err != nil {
			t.Fatalf("upsert division: %v", err)
		}
	}
	got, err := s.ListDivisions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].Name != "VHA" || got[2].Name != "NCA" {
		t.Fatalf("unexpected division order: %+v", got)
	}
}

func TestSetActive_SoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustUpsert(t, s, model.Task{ID: "t-1", Title: "One", IsActive: true})

	ok, err := s.SetActive(ctx, "t-1", false)
	if err != nil || !ok {
		t.Fatalf("SetActive: ok=%v err=%v", ok, err)
	}
	if _, found, err := s.GetTask(ctx, "t-1"); err != nil || found {
		t.Fatalf("expected archived task to be hidden, found=%v err=%v", found, err)
	}
	active, found, err := s.ActiveState(ctx, "t-1")
	if err != nil || !found || active {
		t.Fatalf("expected inactive row, active=%v found=%v err=%v", active, found, err)
	}
	if ok, err := s.SetActive(ctx, "missing", true); err != nil || ok {
		t.Fatalf("expected no row for missing id, ok=%v err=%v", ok, err)
	}
}

func TestListTasks_MatchingFoldsNonASCII(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		model.Task{ID: "1", Title: "Über Summary", Division: "Ärzte,VHA", Category: "Médical", IsActive: true},
		model.Task{ID: "2", Title: "Policy Summary", Description: "ÉTUDE of rules", Division: "VBA", IsActive: true},
	)

	for _, tc := range []struct {
		name string
		q    TaskQuery
		want string
	}{
		{name: "lower search", q: TaskQuery{Search: "über"}, want: "1"},
		{name: "upper search", q: TaskQuery{Search: "ÜBER"}, want: "1"},
		{name: "description", q: TaskQuery{Search: "étude"}, want: "2"},
		{name: "division", q: TaskQuery{Division: "ärzte"}, want: "1"},
		{name: "category", q: TaskQuery{Category: "MÉDICAL"}, want: "1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListTasks(context.Background(), tc.q)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if ids := taskIDs(got); len(ids) != 1 || ids[0] != tc.want {
				t.Fatalf("expected [%s], got %v", tc.want, ids)
			}
		})
	}
}
