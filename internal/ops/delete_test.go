package ops

import (
	"testing"

	"github.com/hpungsan/autotag/internal/errors"
)

func TestDelete_SoftDelete(t *testing.T) {
	database, eng, _ := setupTest(t)

	created, err := Put(database, eng, PutInput{Type: "note"})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	out, err := Delete(database, DeleteInput{ID: created.ID})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !out.Deleted {
		t.Error("Deleted = false, want true")
	}

	// Hidden from normal Get, visible with IncludeDeleted.
	if _, err := Get(database, eng, GetInput{ID: created.ID}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND after delete, got %v", err)
	}
	got, err := Get(database, eng, GetInput{ID: created.ID, IncludeDeleted: true})
	if err != nil {
		t.Fatalf("Get with IncludeDeleted failed: %v", err)
	}
	if got.Record.DeletedAt == nil {
		t.Error("DeletedAt = nil, want set")
	}
}

func TestDelete_MissingID(t *testing.T) {
	database, _, _ := setupTest(t)

	_, err := Delete(database, DeleteInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	database, _, _ := setupTest(t)

	_, err := Delete(database, DeleteInput{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
