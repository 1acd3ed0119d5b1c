package mutate

import (
	"errors"
	"fmt"
)

var ErrTitleRequired = errors.New("title required")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
