package catalog

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"

	"promptdeck/internal/model"
	"promptdeck/internal/store"
)

// fakeSource ignores the pushed-down query so the in-memory predicates are
// what decides the result.
type fakeSource struct {
	tasks []model.Task
	err   error
	last  store.TaskQuery
}

func (f *fakeSource) ListTasks(ctx context.Context, q store.TaskQuery) ([]model.Task, error) {
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Task(nil), f.tasks...), nil
}

type fakeFacets struct {
	divs []model.Division
	cats []model.Category
	err  error
}

func (f fakeFacets) ListDivisions(ctx context.Context) ([]model.Division, error) {
	return f.divs, f.err
}

func (f fakeFacets) ListCategories(ctx context.Context, division string) ([]model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Category
	for _, c := range f.cats {
		if model.IsAll(division) || model.InList(c.Divisions, division) {
			out = append(out, c)
		}
	}
	return out, nil
}

func quietLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := log.New()
	l.SetOutput(&buf)
	return l, &buf
}

func query(t *testing.T, s string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(s)
	if err != nil {
		t.Fatalf("parse query %q: %v", s, err)
	}
	return v
}

func TestResolver_FiltersAndOrders(t *testing.T) {
	src := &fakeSource{tasks: sampleTasks()}
	l, _ := quietLogger()
	r := Resolver{Source: src, Actor: "bob", Log: l}

	res := r.Resolve(context.Background(), query(t, "div=VBA&cat=Administrative"))
	if res.Fallback != FallbackNone {
		t.Fatalf("unexpected fallback %q", res.Fallback)
	}
	if diff := cmp.Diff([]string{"4", "1", "2"}, ids(res.Tasks)); diff != "" {
		t.Fatalf("unexpected tasks (-want +got):\n%s", diff)
	}
	if src.last.Division != "VBA" || src.last.Category != "Administrative" {
		t.Fatalf("expected filter pushdown, got %+v", src.last)
	}

	mine := r.Resolve(context.Background(), query(t, "mine=1"))
	if diff := cmp.Diff([]string{"4", "2"}, ids(mine.Tasks)); diff != "" {
		t.Fatalf("unexpected owned tasks (-want +got):\n%s", diff)
	}
	if src.last.CreatedBy != "bob" {
		t.Fatalf("expected owner pushdown, got %q", src.last.CreatedBy)
	}
}

func TestResolver_PlaceholdersDistinguishEmptyFromUnavailable(t *testing.T) {
	l, buf := quietLogger()

	empty := Resolver{Source: &fakeSource{}, Log: l}.Resolve(context.Background(), nil)
	if empty.Fallback != FallbackEmpty {
		t.Fatalf("expected empty fallback, got %q", empty.Fallback)
	}
	if len(empty.Tasks) != len(placeholderTasks()) {
		t.Fatalf("expected placeholder tasks, got %d", len(empty.Tasks))
	}

	down := Resolver{Source: &fakeSource{err: errors.New("disk gone")}, Log: l}.Resolve(context.Background(), nil)
	if down.Fallback != FallbackUnavailable {
		t.Fatalf("expected unavailable fallback, got %q", down.Fallback)
	}
	if diff := cmp.Diff(ids(empty.Tasks), ids(down.Tasks)); diff != "" {
		t.Fatalf("placeholder ids must be stable (-first +second):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "catalog.store.unavailable") {
		t.Fatalf("expected store failure to be logged, got %q", buf.String())
	}

	noFill := Resolver{Source: &fakeSource{}, NoPlaceholders: true, Log: l}.Resolve(context.Background(), nil)
	if len(noFill.Tasks) != 0 || noFill.Fallback != FallbackEmpty {
		t.Fatalf("expected empty result without placeholders, got %+v", noFill)
	}
}

func TestResolver_PlaceholdersHaveStableIDs(t *testing.T) {
	res := Resolver{}.Resolve(context.Background(), nil)
	for _, tk := range res.Tasks {
		if tk.ID == "" {
			t.Fatalf("placeholder %q has no id", tk.Title)
		}
		if tk.ID != SynthesizeID(tk.Title) {
			t.Fatalf("placeholder %q id %q is not title-derived", tk.Title, tk.ID)
		}
	}
	if SynthesizeID("Meeting Minutes") != SynthesizeID("  meeting minutes ") {
		t.Fatalf("expected normalized titles to share an id")
	}
	if SynthesizeID("A") == SynthesizeID("B") {
		t.Fatalf("expected distinct titles to get distinct ids")
	}
}

func TestResolver_PageUsesConfiguredSize(t *testing.T) {
	var tasks []model.Task
	for _, title := range []string{"e", "D", "c", "B", "a"} {
		tasks = append(tasks, model.Task{ID: title, Title: title})
	}
	r := Resolver{Source: &fakeSource{tasks: tasks}, PageSize: 2}

	pr := r.Page(context.Background(), query(t, "p=2"))
	if pr.Page.TotalPages != 3 || pr.Page.Page != 2 {
		t.Fatalf("unexpected page meta: %+v", pr.Page)
	}
	if diff := cmp.Diff([]string{"c", "D"}, ids(pr.Page.Items)); diff != "" {
		t.Fatalf("unexpected page items (-want +got):\n%s", diff)
	}
}

func TestFacets_FallbackAndNarrowing(t *testing.T) {
	fallback := Facets(context.Background(), fakeFacets{err: errors.New("down")}, "VHA")
	if fallback.Divisions[0] != model.AllValue || len(fallback.Divisions) != len(defaultDivisions)+1 {
		t.Fatalf("unexpected fallback divisions: %v", fallback.Divisions)
	}
	if len(fallback.Categories) != len(defaultCategories)+1 {
		t.Fatalf("unexpected fallback categories: %v", fallback.Categories)
	}

	src := fakeFacets{
		divs: []model.Division{{Name: "VHA"}, {Name: "All"}, {Name: "VBA"}, {Name: "VHA"}},
		cats: []model.Category{{Name: "Medical", Divisions: "VHA"}, {Name: "Finance", Divisions: "NCA,VBA,VHA"}},
	}
	got := Facets(context.Background(), src, "VBA")
	want := FacetList{Divisions: []string{"All", "VHA", "VBA"}, Categories: []string{"All", "Finance"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected facets (-want +got):\n%s", diff)
	}
}

type getterSource struct {
	fakeSource
	byID map[string]model.Task
}

func (g *getterSource) GetTask(ctx context.Context, id string) (model.Task, bool, error) {
	t, ok := g.byID[id]
	return t, ok, nil
}

func TestResolver_Lookup(t *testing.T) {
	ctx := context.Background()
	l, _ := quietLogger()

	src := &getterSource{byID: map[string]model.Task{"t-1": {ID: "t-1", Title: "Direct"}}}
	r := Resolver{Source: src, Log: l}
	if got, ok := r.Lookup(ctx, "t-1"); !ok || got.Title != "Direct" {
		t.Fatalf("expected direct hit, got %+v ok=%v", got, ok)
	}

	// Empty store: placeholders are reachable by their synthesized ids.
	id := SynthesizeID("Meeting Minutes")
	if got, ok := r.Lookup(ctx, id); !ok || got.Title != "Meeting Minutes" {
		t.Fatalf("expected placeholder hit, got %+v ok=%v", got, ok)
	}
	if _, ok := r.Lookup(ctx, "nope"); ok {
		t.Fatalf("expected miss for unknown id")
	}
	if _, ok := r.Lookup(ctx, " "); ok {
		t.Fatalf("expected miss for empty id")
	}
}

func TestResolver_StoreSearchIsUnicodeCaseInsensitive(t *testing.T) {
	st := store.Store{Path: filepath.Join(t.TempDir(), "catalog.sqlite")}
	if err := st.UpsertTask(context.Background(), model.Task{ID: "t1", Title: "Über Summary", IsActive: true}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	l, _ := quietLogger()
	r := Resolver{Source: st, Log: l}

	for _, term := range []string{"über", "ÜBER", "Über"} {
		res := r.Resolve(context.Background(), url.Values{KeySearch: {term}})
		if res.Fallback != FallbackNone {
			t.Fatalf("q=%q: expected store hit, got fallback %q", term, res.Fallback)
		}
		if diff := cmp.Diff([]string{"t1"}, ids(res.Tasks)); diff != "" {
			t.Fatalf("q=%q: unexpected tasks (-want +got):\n%s", term, diff)
		}
	}
}
