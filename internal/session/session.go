package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"promptdeck/internal/nav"
)

// Store keeps one navigation state per browser session. A missing or
// expired session loads as ok=false.
type Store interface {
	Load(ctx context.Context, id string) (nav.PageState, bool, error)
	Save(ctx context.Context, id string, s nav.PageState) error
	Delete(ctx context.Context, id string) error
}

func NewID() string { return uuid.NewString() }

// ValidID reports whether id looks like one NewID produced. Anything else is
// treated as no session so clients cannot pick arbitrary keys.
func ValidID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
