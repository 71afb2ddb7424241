package ops

import (
	"testing"

	"github.com/hpungsan/autotag/internal/errors"
)

func TestPut_Create(t *testing.T) {
	database, eng, _ := setupTest(t)

	out, err := Put(database, eng, PutInput{
		Type: "note",
		Fields: map[string]any{
			"title": "Weekly Planning",
			"body":  "john boe reviews roadmap",
		},
		Tags: []string{"NodeJS"},
	})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if !out.Created {
		t.Error("Created = false, want true")
	}
	if len(out.ID) != 26 {
		t.Errorf("ID length = %d, want 26 (ULID)", len(out.ID))
	}
	for _, want := range []string{"nodejs", "weekly", "planning", "john", "boe", "roadmap"} {
		if !hasTag(out.Tags, want) {
			t.Errorf("tags missing %q: %v", want, out.Tags)
		}
	}
}

func TestPut_Create_MissingType(t *testing.T) {
	database, eng, _ := setupTest(t)

	_, err := Put(database, eng, PutInput{Fields: map[string]any{"title": "x"}})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestPut_Create_UnknownType(t *testing.T) {
	database, eng, _ := setupTest(t)

	_, err := Put(database, eng, PutInput{Type: "bogus"})
	if !errors.Is(err, errors.ErrUnknownType) {
		t.Errorf("expected UNKNOWN_TYPE, got %v", err)
	}
}

func TestPut_Create_NilFields(t *testing.T) {
	database, eng, _ := setupTest(t)

	out, err := Put(database, eng, PutInput{Type: "note", Tags: []string{"solo"}})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !hasTag(out.Tags, "solo") {
		t.Errorf("tags = %v, want to contain %q", out.Tags, "solo")
	}
}

func TestPut_Update_PreservesPriorTags(t *testing.T) {
	database, eng, _ := setupTest(t)

	created, err := Put(database, eng, PutInput{
		Type:   "note",
		Fields: map[string]any{"title": "Original"},
		Tags:   []string{"keepme"},
	})
	if err != nil {
		t.Fatalf("Put create failed: %v", err)
	}

	// New fields omit the tag field; cumulative derivation still sees
	// the prior tags.
	updated, err := Put(database, eng, PutInput{
		ID:     created.ID,
		Fields: map[string]any{"title": "Revised"},
	})
	if err != nil {
		t.Fatalf("Put update failed: %v", err)
	}

	if updated.Created {
		t.Error("Created = true on update, want false")
	}
	if !hasTag(updated.Tags, "keepme") {
		t.Errorf("prior tag dropped on update: %v", updated.Tags)
	}
	if !hasTag(updated.Tags, "revised") {
		t.Errorf("new field not mined on update: %v", updated.Tags)
	}
}

func TestPut_Update_TypeConflict(t *testing.T) {
	database, eng, _ := setupTest(t)

	created, err := Put(database, eng, PutInput{Type: "note"})
	if err != nil {
		t.Fatalf("Put create failed: %v", err)
	}

	_, err = Put(database, eng, PutInput{ID: created.ID, Type: "secret"})
	if !errors.Is(err, errors.ErrConflict) {
		t.Errorf("expected CONFLICT, got %v", err)
	}
}

func TestPut_Update_NotFound(t *testing.T) {
	database, eng, _ := setupTest(t)

	_, err := Put(database, eng, PutInput{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestPut_HookNone_StoresVerbatim(t *testing.T) {
	database, eng, _ := setupTest(t)

	out, err := Put(database, eng, PutInput{
		Type:   "raw",
		Fields: map[string]any{"title": "This Should Not Be Mined"},
		Tags:   []string{"The Exact Phrase"},
	})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if len(out.Tags) != 1 || out.Tags[0] != "The Exact Phrase" {
		t.Errorf("tags = %v, want verbatim explicit tags", out.Tags)
	}
}
