package cli

import (
	"fmt"

	"promptdeck/internal/mutate"
)

func errNotFound(kind, id string) error {
	return mutate.NotFoundError{Kind: kind, ID: id}
}

type flagConflictError struct {
	a, b string
}

func (e flagConflictError) Error() string {
	return fmt.Sprintf("--%s and --%s cannot be used together", e.a, e.b)
}

func errFlagConflict(a, b string) error {
	return flagConflictError{a: a, b: b}
}
