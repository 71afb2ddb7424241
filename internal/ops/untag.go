package ops

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/autotag/internal/db"
	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/tagging"
)

// UntagInput contains parameters for the Untag operation.
type UntagInput struct {
	ID   string
	Tags []string // tags to remove; normalized but never filtered
}

// UntagOutput contains the result of the Untag operation.
type UntagOutput struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

// Untag removes tags from a stored record and persists the result.
func Untag(database *sql.DB, eng *tagging.Engine, input UntagInput) (*UntagOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	if len(input.Tags) == 0 {
		return nil, errors.NewInvalidRequest("at least one tag must be provided")
	}

	rec, err := db.GetByID(database, id, false)
	if err != nil {
		return nil, err
	}

	tags, err := eng.Untag(rec, input.Tags...)
	if err != nil {
		return nil, err
	}

	if err := db.UpdateByID(database, rec); err != nil {
		return nil, err
	}

	return &UntagOutput{ID: rec.ID, Tags: tags}, nil
}
