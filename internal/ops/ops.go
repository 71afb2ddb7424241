package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/autotag/internal/record"
	"github.com/hpungsan/autotag/internal/tagging"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// RecordView is the outward shape of a record. Tags are omitted when the
// type's hide hint is set.
type RecordView struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Fields    map[string]any `json:"fields"`
	Tags      []string       `json:"tags,omitempty"`
	CreatedAt int64          `json:"created_at"`
	UpdatedAt int64          `json:"updated_at"`
	DeletedAt *int64         `json:"deleted_at,omitempty"`
}

// viewOf projects a record through the type's storage hints. With hide set,
// the tag field is stripped from both the mirror and the field map.
func viewOf(rec *record.Record, eng *tagging.Engine) RecordView {
	view := RecordView{
		ID:        rec.ID,
		Type:      rec.Type,
		Fields:    rec.Fields,
		Tags:      rec.Tags,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		DeletedAt: rec.DeletedAt,
	}

	if opts, ok := eng.Options(rec.Type); ok && opts.Hide {
		view.Tags = nil
		fields := make(map[string]any, len(rec.Fields))
		for k, v := range rec.Fields {
			if k == opts.Path {
				continue
			}
			fields[k] = v
		}
		view.Fields = fields
	}

	return view
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// clampLimit applies list limit defaults and bounds.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
