package mutate

import (
	"context"
	"testing"

	"promptdeck/internal/model"
)

func TestSetTaskArchived(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, model.Task{ID: "t-1", Title: "A", IsActive: true})

	if _, err := SetTaskArchived(ctx, s, "missing", true); err == nil {
		t.Fatalf("expected error")
	}

	res, err := SetTaskArchived(ctx, s, "t-1", true)
	if err != nil {
		t.Fatalf("SetTaskArchived error: %v", err)
	}
	if !res.Changed || !res.Archived {
		t.Fatalf("expected archived change, got %+v", res)
	}

	// No-op
	res2, err := SetTaskArchived(ctx, s, "t-1", true)
	if err != nil {
		t.Fatalf("SetTaskArchived no-op error: %v", err)
	}
	if res2.Changed {
		t.Fatalf("expected changed=false")
	}

	res3, err := SetTaskArchived(ctx, s, "t-1", false)
	if err != nil || !res3.Changed {
		t.Fatalf("expected restore, res=%+v err=%v", res3, err)
	}
	if _, ok, _ := s.GetTask(ctx, "t-1"); !ok {
		t.Fatalf("expected restored task to be visible")
	}
}
