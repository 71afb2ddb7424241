package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hpungsan/autotag/internal/db"
	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/record"
	"github.com/hpungsan/autotag/internal/tagging"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	// Name is the export file name inside baseDir/exports. Optional;
	// defaults to <type-or-all>-<timestamp>.jsonl. Must be a bare file
	// name, not a path.
	Name           string
	Type           string // optional filter by record type
	IncludeDeleted bool
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader represents the header line in a JSONL export file.
type ExportHeader struct {
	AutotagExport bool   `json:"_autotag_export"`
	SchemaVersion string `json:"schema_version"`
	ExportedAt    int64  `json:"exported_at"`
}

// Export writes records to a JSONL file under baseDir/exports: one header
// line, then one record view per line. Types whose exportable hint is
// false have their tag fields stripped from the output.
func Export(database *sql.DB, eng *tagging.Engine, baseDir string, input ExportInput) (*ExportOutput, error) {
	now := time.Now()
	exportedAt := now.Unix()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		scope := input.Type
		if scope == "" {
			scope = "all"
		}
		name = fmt.Sprintf("%s-%s.jsonl", scope, now.Format("20060102-150405"))
	}
	// Exports are confined to the exports directory.
	if name != filepath.Base(name) || name == "." || name == ".." {
		return nil, errors.NewInvalidRequest("name must be a bare file name")
	}

	if input.Type != "" && !eng.HasType(input.Type) {
		return nil, errors.NewUnknownType(input.Type)
	}

	records, _, err := db.List(database, db.ListFilter{
		Type:           input.Type,
		IncludeDeleted: input.IncludeDeleted,
	}, MaxExportRecords, 0)
	if err != nil {
		return nil, err
	}

	exportPath := filepath.Join(baseDir, "exports", name)

	// Write to temp file first, then atomic rename to preserve any
	// existing file on failure.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	enc := json.NewEncoder(file)
	if err := enc.Encode(ExportHeader{
		AutotagExport: true,
		SchemaVersion: "1.0",
		ExportedAt:    exportedAt,
	}); err != nil {
		return nil, errors.NewInternal(err)
	}

	count := 0
	for _, rec := range records {
		view := exportViewOf(rec, eng)
		if err := enc.Encode(view); err != nil {
			return nil, errors.NewInternal(err)
		}
		count++
	}

	if err := file.Close(); err != nil {
		file = nil
		return nil, errors.NewInternal(err)
	}
	file = nil

	if err := os.Rename(tempPath, exportPath); err != nil {
		return nil, errors.NewInternal(err)
	}
	success = true

	return &ExportOutput{Path: exportPath, Count: count, ExportedAt: exportedAt}, nil
}

// MaxExportRecords bounds a single export.
const MaxExportRecords = 10000

// exportViewOf projects a record for export, honoring the exportable hint.
func exportViewOf(rec *record.Record, eng *tagging.Engine) RecordView {
	view := RecordView{
		ID:        rec.ID,
		Type:      rec.Type,
		Fields:    rec.Fields,
		Tags:      rec.Tags,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		DeletedAt: rec.DeletedAt,
	}

	if opts, ok := eng.Options(rec.Type); ok && !opts.CanExport() {
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
