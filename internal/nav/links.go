package nav

import (
	"promptdeck/internal/catalog"
)

// CatalogAddress is the canonical catalog address for f. Every filter key is
// present so links built from it round-trip exactly.
func CatalogAddress(f catalog.CatalogFilter) Address {
	a := NewAddress()
	for k, v := range f.Values() {
		a.v.Set(k, v)
	}
	return a.WithPage(PageCatalog)
}

// BackToCatalog keeps only the catalog filter from addr and points it at the
// catalog page. Task, toggle and ack keys are dropped.
func BackToCatalog(addr Address) Address {
	return CatalogAddress(catalog.ParseFilter(addr))
}

// TaskAddress links to the detail page of id, carrying the filter so the
// back link can restore it.
func TaskAddress(f catalog.CatalogFilter, id string) Address {
	return CatalogAddress(f).WithPage(PageTaskDetail).With(KeyTask, id)
}

func EditAddress(f catalog.CatalogFilter, id string) Address {
	return CatalogAddress(f).WithPage(PageEditTask).With(KeyTask, id)
}

// PageAddress links to a page with no other parameters.
func PageAddress(p PageID) Address {
	return NewAddress().WithPage(p)
}
