package record

// Record is a stored instance of a declared type. Field values live in
// Fields as decoded JSON; Tags mirrors the record's tag field so the store
// can index it without re-parsing fields_json.
type Record struct {
	// ID is a ULID that uniquely identifies this record
	ID string

	// Type is the declared type name this record belongs to
	Type string

	// Fields holds the record's field values, keyed by field name
	Fields map[string]any

	// Tags is a denormalized mirror of the tag field (see schema.TagOptions.Path)
	Tags []string

	// CreatedAt is the Unix timestamp when the record was created
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the record was last updated
	UpdatedAt int64

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64
}

// TagsOf reads the tag field at path from a field map, coercing the JSON
// shapes a tag list can arrive in. Missing or malformed values yield nil.
func TagsOf(fields map[string]any, path string) []string {
	if fields == nil {
		return nil
	}
	return StringSlice(fields[path])
}

// SetTags writes the tag field at path into a field map.
func SetTags(fields map[string]any, path string, tags []string) {
	if fields == nil {
		return
	}
	fields[path] = tags
}

// StringSlice coerces a value into a []string. Accepts []string directly
// and []any with string elements (the shape encoding/json produces);
// non-string elements are skipped. Anything else yields nil.
func StringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
