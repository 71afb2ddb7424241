package ops

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/autotag/internal/db"
	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/tagging"
)

// TagInput contains parameters for the Tag operation.
type TagInput struct {
	ID   string
	Tags []string // explicit tags appended before field mining
}

// TagOutput contains the result of the Tag operation.
type TagOutput struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

// Tag re-derives a stored record's tag set, optionally seeding it with
// explicit tags, and persists the result.
func Tag(database *sql.DB, eng *tagging.Engine, input TagInput) (*TagOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	rec, err := db.GetByID(database, id, false)
	if err != nil {
		return nil, err
	}

	tags, err := eng.Tag(rec, input.Tags...)
	if err != nil {
		return nil, err
	}

	if err := db.UpdateByID(database, rec); err != nil {
		return nil, err
	}

	return &TagOutput{ID: rec.ID, Tags: tags}, nil
}
