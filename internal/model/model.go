package model

import "strings"

// AllValue is the division/category filter value that disables the filter.
const AllValue = "All"

type Division struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FullTitle string `json:"fullTitle,omitempty"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Divisions is a comma-joined list of the divisions the category applies to.
	Divisions string `json:"divisions,omitempty"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

// Task is a prompt template in the catalog. Division and Category may hold a
// comma-joined multi-membership list (e.g. "NCA,VBA,VHA").
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Division    string `json:"division,omitempty"`
	Category    string `json:"category,omitempty"`
	IsFavorite  bool   `json:"isFavorite"`
	IsActive    bool   `json:"isActive"`

	// Display-only fields.
	Priority      string `json:"priority,omitempty"`
	DueDate       string `json:"dueDate,omitempty"`
	Tags          string `json:"tags,omitempty"`
	References    string `json:"references,omitempty"`
	AISuggestions string `json:"aiSuggestions,omitempty"`
	PromptDefault string `json:"promptDefault,omitempty"`

	CreatedBy string `json:"createdBy,omitempty"`
}

// SplitList splits a comma-joined membership list, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// InList reports whether name appears anywhere in the comma-joined list.
// Matching is Unicode case-insensitive substring containment, the same rule
// the store applies in SQL, so a division named "VHA" matches "NCA,VBA,VHA".
func InList(list, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return true
	}
	return strings.Contains(strings.ToLower(list), strings.ToLower(name))
}

func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AllValue)
}
