package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"promptdeck/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Meeting Minutes", Description: "Create meeting minutes from a transcript", Division: "NCA,VBA,VHA", Category: "Administrative", IsFavorite: true, CreatedBy: "alice"},
		{ID: "2", Title: "Policy Summary", Description: "Summarize complex policies", Division: "VBA", Category: "Administrative", CreatedBy: "bob"},
		{ID: "3", Title: "Ambient Dictation", Description: "Clinic notes from a meeting recording", Division: "VHA", Category: "Medical", IsFavorite: true, CreatedBy: "alice"},
		{ID: "4", Title: "Claim Letter", Description: "Letter to a veteran", Division: "VBA", Category: "Public Affairs,Administrative", IsFavorite: true, CreatedBy: "bob"},
		{ID: "5", Title: "Burial Schedule", Description: "Cemetery scheduling", Division: "NCA", Category: "Management"},
	}
}

func ids(ts []model.Task) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func permutations(ps []Predicate) [][]Predicate {
	if len(ps) <= 1 {
		return [][]Predicate{append([]Predicate(nil), ps...)}
	}
	var out [][]Predicate
	for i := range ps {
		rest := make([]Predicate, 0, len(ps)-1)
		rest = append(rest, ps[:i]...)
		rest = append(rest, ps[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Predicate{ps[i]}, p...))
		}
	}
	return out
}

func TestPredicates_OrderDoesNotChangeResult(t *testing.T) {
	filters := []CatalogFilter{
		{Division: "VHA", Category: "Administrative", SearchTerm: "meeting", FavoritesOnly: true, OwnedOnly: true},
		{Division: "VBA", Category: "Administrative", SearchTerm: "", FavoritesOnly: true, OwnedOnly: false},
		{Division: model.AllValue, Category: model.AllValue, SearchTerm: "LETTER", FavoritesOnly: false, OwnedOnly: true},
		{Division: "NCA", Category: model.AllValue, SearchTerm: "s", FavoritesOnly: false, OwnedOnly: false},
	}
	for _, f := range filters {
		ps := Predicates(f, "bob")
		want := ids(Apply(sampleTasks(), ps))
		for _, perm := range permutations(ps) {
			if diff := cmp.Diff(want, ids(Apply(sampleTasks(), perm))); diff != "" {
				t.Fatalf("filter %+v: order changed result (-want +got):\n%s", f, diff)
			}
		}
	}
}

func TestPredicates_SearchMatchesTitleOrDescription(t *testing.T) {
	tasks := []model.Task{
		{ID: "mm", Title: "Meeting Minutes"},
		{ID: "ps", Title: "Policy Summary"},
	}
	got := Apply(tasks, Predicates(CatalogFilter{SearchTerm: "meeting"}, ""))
	if diff := cmp.Diff([]string{"mm"}, ids(got)); diff != "" {
		t.Fatalf("unexpected search result (-want +got):\n%s", diff)
	}

	got = Apply(sampleTasks(), Predicates(CatalogFilter{SearchTerm: "MEETING"}, ""))
	if diff := cmp.Diff([]string{"1", "3"}, ids(got)); diff != "" {
		t.Fatalf("expected title and description matches (-want +got):\n%s", diff)
	}
}

func TestPredicates_DivisionMembership(t *testing.T) {
	tasks := []model.Task{
		{ID: "multi", Division: "NCA,VBA,VHA"},
		{ID: "vba", Division: "VBA"},
	}
	got := Apply(tasks, Predicates(CatalogFilter{Division: "VHA"}, ""))
	if diff := cmp.Diff([]string{"multi"}, ids(got)); diff != "" {
		t.Fatalf("unexpected division result (-want +got):\n%s", diff)
	}
}

func TestPredicates_OwnedOnlyWithoutActorIsNoop(t *testing.T) {
	f := CatalogFilter{Division: model.AllValue, Category: model.AllValue, OwnedOnly: true}
	if got := Apply(sampleTasks(), Predicates(f, "")); len(got) != len(sampleTasks()) {
		t.Fatalf("expected no filtering without actor, got %v", ids(got))
	}
	got := Apply(sampleTasks(), Predicates(f, "alice"))
	if diff := cmp.Diff([]string{"1", "3"}, ids(got)); diff != "" {
		t.Fatalf("unexpected owned result (-want +got):\n%s", diff)
	}
}
