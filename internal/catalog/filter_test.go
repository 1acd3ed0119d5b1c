package catalog

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"promptdeck/internal/model"
)

func TestParseFilter_DefaultsAndMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  CatalogFilter
	}{
		{name: "empty", query: "", want: DefaultFilter()},
		{name: "bad page", query: "p=abc", want: DefaultFilter()},
		{name: "zero page", query: "p=0", want: DefaultFilter()},
		{name: "negative page", query: "p=-3", want: DefaultFilter()},
		{
			name:  "all fields",
			query: "div=VHA&cat=Medical&q=+notes+&fav=1&mine=1&p=3",
			want:  CatalogFilter{Division: "VHA", Category: "Medical", SearchTerm: "notes", FavoritesOnly: true, OwnedOnly: true, Page: 3},
		},
		{
			name:  "explicit all and off flags",
			query: "div=All&cat=&fav=0&mine=nope",
			want:  DefaultFilter(),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if diff := cmp.Diff(tc.want, ParseFilter(v)); diff != "" {
				t.Fatalf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFilter_NilSource(t *testing.T) {
	if got := ParseFilter(nil); got != DefaultFilter() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestCatalogFilter_ValuesRoundTrip(t *testing.T) {
	f := CatalogFilter{Division: "VBA", Category: model.AllValue, SearchTerm: "letter", FavoritesOnly: true, Page: 2}
	v := url.Values{}
	for k, x := range f.Values() {
		v.Set(k, x)
	}
	if got := ParseFilter(v); got != f {
		t.Fatalf("expected %+v, got %+v", f, got)
	}
}

func TestCatalogFilter_QueryOmitsOwnerWithoutActor(t *testing.T) {
	f := CatalogFilter{Division: model.AllValue, Category: model.AllValue, OwnedOnly: true, Page: 1}
	if q := f.Query(""); q.CreatedBy != "" {
		t.Fatalf("expected no owner predicate, got %q", q.CreatedBy)
	}
	if q := f.Query("alice"); q.CreatedBy != "alice" {
		t.Fatalf("expected owner alice, got %q", q.CreatedBy)
	}
}
