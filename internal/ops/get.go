package ops

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/autotag/internal/db"
	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/tagging"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID             string
	IncludeDeleted bool
}

// GetOutput contains the result of the Get operation.
type GetOutput struct {
	Record RecordView `json:"record"`
}

// Get fetches a record by ID.
func Get(database *sql.DB, eng *tagging.Engine, input GetInput) (*GetOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	rec, err := db.GetByID(database, id, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: viewOf(rec, eng)}, nil
}
