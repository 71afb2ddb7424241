package ops

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/autotag/internal/db"
	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/tagging"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Type           string // optional filter by record type
	Tag            string // optional filter by tag (normalized before lookup)
	Limit          int    // default: 20, max: 100
	Offset         int    // default: 0
	IncludeDeleted bool
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []RecordView `json:"items"`
	Pagination Pagination   `json:"pagination"`
	Sort       string       `json:"sort"`
}

// List retrieves records newest-first with pagination. The tag filter is
// normalized through the same pipeline derived tags go through, so
// "NodeJS" finds records tagged "nodejs". A filter that does not survive
// normalization as a single tag can never match a stored record and is
// rejected rather than silently dropped.
func List(database *sql.DB, eng *tagging.Engine, input ListInput) (*ListOutput, error) {
	tag := ""
	if strings.TrimSpace(input.Tag) != "" {
		normalized := tagging.Normalize(input.Tag)
		if len(normalized) != 1 {
			return nil, errors.NewInvalidRequest("tag filter must normalize to a single tag")
		}
		tag = normalized[0]
	}

	limit := clampLimit(input.Limit)
	offset := max(input.Offset, 0)

	records, total, err := db.List(database, db.ListFilter{
		Type:           strings.TrimSpace(input.Type),
		Tag:            tag,
		IncludeDeleted: input.IncludeDeleted,
	}, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]RecordView, 0, len(records))
	for _, rec := range records {
		items = append(items, viewOf(rec, eng))
	}

	hasMore := offset+len(items) < total

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "updated_at_desc",
	}, nil
}
