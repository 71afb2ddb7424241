package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/record"
)

// Insert stores a new record in the database.
func Insert(db *sql.DB, rec *record.Record) error {
	fieldsJSON, tagsJSON, err := encodeRecord(rec)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO records (id, type, fields_json, tags_json, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = db.Exec(query, rec.ID, rec.Type, fieldsJSON, tagsJSON, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetByID retrieves a record by its ULID.
// If includeDeleted is false, soft-deleted records are excluded.
func GetByID(db *sql.DB, id string, includeDeleted bool) (*record.Record, error) {
	query := `
		SELECT id, type, fields_json, tags_json, created_at, updated_at, deleted_at
		FROM records
		WHERE id = ?
	`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	row := db.QueryRow(query, id)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return rec, nil
}

// UpdateByID updates a record's fields and tags.
// Sets updated_at to current timestamp. Does NOT change: id, type.
func UpdateByID(db *sql.DB, rec *record.Record) error {
	fieldsJSON, tagsJSON, err := encodeRecord(rec)
	if err != nil {
		return errors.NewInternal(err)
	}

	now := time.Now().Unix()

	query := `
		UPDATE records
		SET fields_json = ?, tags_json = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.Exec(query, fieldsJSON, tagsJSON, now, rec.ID)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(rec.ID)
	}

	rec.UpdatedAt = now

	return nil
}

// SoftDelete marks a record as deleted by setting deleted_at.
func SoftDelete(db *sql.DB, id string) error {
	now := time.Now().Unix()

	query := `
		UPDATE records
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.Exec(query, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Type           string // record type name
	Tag            string // exact match against the tags_json array
	IncludeDeleted bool
}

// List retrieves records newest-first with pagination. The tag filter uses
// json_each over the denormalized tags_json column.
func List(db *sql.DB, filter ListFilter, limit, offset int) ([]*record.Record, int, error) {
	where := " WHERE 1=1"
	var args []any

	if !filter.IncludeDeleted {
		where += " AND deleted_at IS NULL"
	}
	if filter.Type != "" {
		where += " AND type = ?"
		args = append(args, filter.Type)
	}
	if filter.Tag != "" {
		where += " AND EXISTS (SELECT 1 FROM json_each(records.tags_json) WHERE json_each.value = ?)"
		args = append(args, filter.Tag)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM records" + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, type, fields_json, tags_json, created_at, updated_at, deleted_at
		FROM records` + where + `
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var records []*record.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return records, total, nil
}

// encodeRecord marshals a record's field map and tag mirror for storage.
// Tags always encode to a JSON array (never NULL) so json_each can run
// against the column unconditionally.
func encodeRecord(rec *record.Record) (fieldsJSON, tagsJSON string, err error) {
	fields := rec.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	fb, err := json.Marshal(fields)
	if err != nil {
		return "", "", err
	}

	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	tb, err := json.Marshal(tags)
	if err != nil {
		return "", "", err
	}

	return string(fb), string(tb), nil
}

// scanRecord scans a single row into a Record struct. The scan argument
// abstracts over *sql.Row and *sql.Rows.
func scanRecord(scan func(dest ...any) error) (*record.Record, error) {
	var (
		rec        record.Record
		fieldsJSON string
		tagsJSON   string
		deletedAt  sql.NullInt64
	)

	err := scan(&rec.ID, &rec.Type, &fieldsJSON, &tagsJSON, &rec.CreatedAt, &rec.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	if deletedAt.Valid {
		rec.DeletedAt = &deletedAt.Int64
	}

	if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		return nil, err
	}

	return &rec, nil
}
