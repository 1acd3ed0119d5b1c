package catalog

import (
	"strings"

	"github.com/google/uuid"

	"promptdeck/internal/model"
)

// placeholderNamespace seeds name-based ids so the same title always maps to
// the same synthesized id across requests and processes.
var placeholderNamespace = uuid.MustParse("3f0c8a4e-6b1d-5c2e-9a7f-1d2b3c4d5e6f")

// Fallback says why a result set is not straight from the store.
type Fallback string

const (
	FallbackNone        Fallback = ""
	FallbackEmpty       Fallback = "empty"
	FallbackUnavailable Fallback = "unavailable"
)

// Notice is the user-facing line for a fallback result; shown is the number
// of tasks displayed alongside it.
func (f Fallback) Notice(shown int) string {
	switch {
	case f == FallbackUnavailable && shown > 0:
		return "The catalog is unavailable right now. Showing example templates."
	case f == FallbackUnavailable:
		return "The catalog is unavailable right now."
	case f == FallbackEmpty && shown > 0:
		return "No templates match. Showing example templates."
	case f == FallbackEmpty:
		return "No templates match your filters."
	}
	return ""
}

func placeholderTasks() []model.Task {
	return []model.Task{
		{Title: "Meeting Minutes", Description: "Create meeting minutes from a transcript", Division: "Administrative", Category: "Management", IsFavorite: true, IsActive: true},
		{Title: "Ambient Dictation", Description: "Generate outpatient clinic notes from a transcript", Division: "Medical", Category: "Documentation", IsActive: true},
		{Title: "Market Pay Review", Description: "Comprehensive market pay review summary", Division: "Human Resources", Category: "Compensation", IsActive: true},
		{Title: "Benefits Claim Status", Description: "Professional letter updating a veteran", Division: "Public Affairs", Category: "Communication", IsActive: true},
	}
}

// SynthesizeID returns a stable id derived from the task title.
func SynthesizeID(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	return "tmpl-" + uuid.NewSHA1(placeholderNamespace, []byte(key)).String()
}

func ensureIDs(tasks []model.Task) []model.Task {
	for i := range tasks {
		if strings.TrimSpace(tasks[i].ID) == "" {
			tasks[i].ID = SynthesizeID(tasks[i].Title)
		}
	}
	return tasks
}
