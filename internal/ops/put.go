package ops

import (
	"database/sql"
	"time"

	"github.com/hpungsan/autotag/internal/db"
	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/record"
	"github.com/hpungsan/autotag/internal/schema"
	"github.com/hpungsan/autotag/internal/tagging"
)

// PutInput contains parameters for the Put operation.
type PutInput struct {
	// ID addresses an existing record to update; empty means create.
	ID string
	// Type is the declared record type. Required on create; on update it
	// must match the stored record if provided.
	Type string
	// Fields replaces the record's field values wholesale when non-nil.
	Fields map[string]any
	// Tags are explicit tags handed to derivation alongside field mining.
	Tags []string
}

// PutOutput contains the result of the Put operation.
type PutOutput struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Tags    []string `json:"tags"`
	Created bool     `json:"created"`
}

// Put creates or updates a record, running the type's lifecycle hook so
// tags are re-derived before persistence. The hook point decides when the
// derivation runs relative to put-level validation; with hook "none" the
// explicit tags are stored as given, unprocessed.
func Put(database *sql.DB, eng *tagging.Engine, input PutInput) (*PutOutput, error) {
	if input.ID == "" {
		return create(database, eng, input)
	}
	return update(database, eng, input)
}

func create(database *sql.DB, eng *tagging.Engine, input PutInput) (*PutOutput, error) {
	if input.Type == "" {
		return nil, errors.NewInvalidRequest("type is required")
	}
	opts, ok := eng.Options(input.Type)
	if !ok {
		return nil, errors.NewUnknownType(input.Type)
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	rec := &record.Record{
		ID:        id,
		Type:      input.Type,
		Fields:    input.Fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rec.Fields == nil {
		rec.Fields = map[string]any{}
	}

	if err := runHook(eng, opts, rec, input.Tags); err != nil {
		return nil, err
	}

	if err := db.Insert(database, rec); err != nil {
		return nil, err
	}

	return &PutOutput{ID: rec.ID, Type: rec.Type, Tags: rec.Tags, Created: true}, nil
}

func update(database *sql.DB, eng *tagging.Engine, input PutInput) (*PutOutput, error) {
	rec, err := db.GetByID(database, input.ID, false)
	if err != nil {
		return nil, err
	}
	if input.Type != "" && input.Type != rec.Type {
		return nil, errors.NewConflict("type does not match stored record")
	}
	opts, ok := eng.Options(rec.Type)
	if !ok {
		return nil, errors.NewUnknownType(rec.Type)
	}

	if input.Fields != nil {
		// Replace fields wholesale but keep the current tag field so
		// cumulative derivation still sees prior tags.
		prior := record.TagsOf(rec.Fields, opts.Path)
		rec.Fields = input.Fields
		if _, present := rec.Fields[opts.Path]; !present && prior != nil {
			record.SetTags(rec.Fields, opts.Path, prior)
		}
	}

	if err := runHook(eng, opts, rec, input.Tags); err != nil {
		return nil, err
	}

	if err := db.UpdateByID(database, rec); err != nil {
		return nil, err
	}

	return &PutOutput{ID: rec.ID, Type: rec.Type, Tags: rec.Tags, Created: false}, nil
}

// runHook performs automatic tag derivation at the type's configured
// lifecycle point. Both points currently precede the write; they differ
// in whether derivation runs before or after put-level validation, which
// is degenerate here because Put validates before calling.
func runHook(eng *tagging.Engine, opts schema.TagOptions, rec *record.Record, explicit []string) error {
	if opts.Hook == schema.HookNone {
		// No automatic derivation: explicit tags are stored verbatim.
		if explicit != nil {
			record.SetTags(rec.Fields, opts.Path, explicit)
			rec.Tags = explicit
		} else {
			rec.Tags = record.TagsOf(rec.Fields, opts.Path)
		}
		return nil
	}

	_, err := eng.Tag(rec, explicit...)
	return err
}
