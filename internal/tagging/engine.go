package tagging

import (
	"fmt"
	"sort"
	"time"

	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/record"
	"github.com/hpungsan/autotag/internal/schema"
)

// DefaultDateFormat renders a date as full weekday, full month, year.
// Tokenized downstream, a date contributes a weekday token, a month-name
// token, and a year token.
const DefaultDateFormat = "Monday January 2006"

// Options carries process-wide settings threaded into the engine at
// construction. Read-only afterwards.
type Options struct {
	// DateFormat is the time layout date fields are rendered with.
	// Empty means DefaultDateFormat.
	DateFormat string

	// Blacklist is the process-wide word list (environment plus config),
	// merged with each type's own list.
	Blacklist []string
}

// FieldPlan describes one taggable field of a compiled type.
type FieldPlan struct {
	Name      string           `json:"name"`
	Kind      schema.FieldKind `json:"kind"`
	Of        string           `json:"of,omitempty"`
	Extractor string           `json:"extractor,omitempty"`
}

// fieldPlan pairs a FieldPlan with its resolved extractor function.
type fieldPlan struct {
	FieldPlan
	extract ExtractorFunc // nil = default per-kind policy
}

// compiledType is the immutable per-type derivation plan, built once when
// the engine is constructed.
type compiledType struct {
	name      string
	fields    []fieldPlan
	opts      schema.TagOptions
	blacklist *Blacklist
}

// Engine derives tags for records of declared types. It holds no mutable
// state after construction; concurrent derivation over distinct records
// needs no synchronization.
type Engine struct {
	types      map[string]*compiledType
	dateFormat string
}

// NewEngine validates the declarations and compiles the per-type field
// plans. Extractor names are resolved here against the registry.
func NewEngine(types map[string]*schema.TypeDef, opts Options) (*Engine, error) {
	if err := schema.Validate(types); err != nil {
		return nil, err
	}

	dateFormat := opts.DateFormat
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	e := &Engine{
		types:      make(map[string]*compiledType, len(types)),
		dateFormat: dateFormat,
	}

	for typeName, def := range types {
		tagOpts := def.Options()
		ct := &compiledType{
			name:      typeName,
			opts:      tagOpts,
			blacklist: NewBlacklist(opts.Blacklist, tagOpts.Blacklist),
		}
		for _, fieldName := range def.FieldNames() {
			fd := def.Fields[fieldName]
			if !fd.Taggable {
				continue
			}
			fp := fieldPlan{FieldPlan: FieldPlan{
				Name:      fieldName,
				Kind:      fd.Kind,
				Of:        fd.Of,
				Extractor: fd.Extractor,
			}}
			if fd.Extractor != "" {
				fn, ok := LookupExtractor(fd.Extractor)
				if !ok {
					return nil, errors.NewUnknownExtractor(typeName, fieldName, fd.Extractor)
				}
				fp.extract = fn
			}
			ct.fields = append(ct.fields, fp)
		}
		e.types[typeName] = ct
	}

	return e, nil
}

// Tag re-derives the record's canonical tag set: existing tags (discarded
// in fresh mode) plus the explicit tags plus candidates mined from every
// taggable field, blacklist-filtered, then normalized. The record's tag
// field is overwritten only after the full candidate list is computed.
func (e *Engine) Tag(rec *record.Record, explicit ...string) ([]string, error) {
	ct, ok := e.types[rec.Type]
	if !ok {
		return nil, errors.NewUnknownType(rec.Type)
	}
	if rec.Fields == nil {
		rec.Fields = make(map[string]any)
	}
	tags := e.deriveInto(ct, rec.Fields, explicit)
	rec.Tags = tags
	return tags, nil
}

// Untag removes tags from the record's tag field. The removal set is
// tokenized, lowercased, and deduplicated, but deliberately bypasses both
// the blacklist and the stopword corpus: explicit removal is not subject
// to derivation filtering.
func (e *Engine) Untag(rec *record.Record, tags ...string) ([]string, error) {
	ct, ok := e.types[rec.Type]
	if !ok {
		return nil, errors.NewUnknownType(rec.Type)
	}

	removal := make(map[string]bool)
	for _, tok := range Tokens(tags...) {
		removal[tok] = true
	}

	current := record.TagsOf(rec.Fields, ct.opts.Path)
	kept := make([]string, 0, len(current))
	for _, tag := range current {
		if removal[tag] {
			continue
		}
		kept = append(kept, tag)
	}

	record.SetTags(rec.Fields, ct.opts.Path, kept)
	rec.Tags = kept
	return kept, nil
}

// deriveInto runs the full pipeline against one field map and writes the
// result back to the map's tag field. Shared by Tag and by delegation into
// embedded sub-records.
func (e *Engine) deriveInto(ct *compiledType, fields map[string]any, explicit []string) []string {
	var candidates []string
	if !ct.opts.Fresh {
		candidates = append(candidates, record.TagsOf(fields, ct.opts.Path)...)
	}
	candidates = append(candidates, explicit...)
	for _, fp := range ct.fields {
		candidates = append(candidates, e.extractField(fp, fields[fp.Name])...)
	}

	toks := ct.blacklist.Filter(candidates...)
	tags := Normalize(toks...)

	record.SetTags(fields, ct.opts.Path, tags)
	return tags
}

// extractField produces raw candidates for one field value. A custom
// extractor replaces the per-kind policy entirely; its output is
// stringified the same way default candidates are.
func (e *Engine) extractField(fp fieldPlan, v any) []string {
	if v == nil {
		return nil
	}
	if fp.extract != nil {
		return stringify(fp.extract(v))
	}

	switch fp.Kind {
	case schema.KindDate:
		if t, ok := parseDate(v); ok {
			return []string{t.Format(e.dateFormat)}
		}
		return stringify(v)
	case schema.KindMap:
		if m, ok := v.(map[string]any); ok {
			return collectStrings(m)
		}
		return nil
	case schema.KindRecord:
		return e.delegate(fp.Of, v)
	case schema.KindRef:
		// Bare identifiers never become tags; only populated values delegate.
		if _, isID := v.(string); isID {
			return nil
		}
		return e.delegate(fp.Of, v)
	default:
		return stringify(v)
	}
}

// delegate runs the target type's own derivation against an embedded
// sub-record and harvests its resulting tag field as candidates. Values
// that are not embedded records, and targets the engine does not know,
// contribute nothing.
func (e *Engine) delegate(typeName string, v any) []string {
	ct, ok := e.types[typeName]
	if !ok {
		return nil
	}

	switch sub := v.(type) {
	case map[string]any:
		return e.deriveInto(ct, sub, nil)
	case *record.Record:
		if sub == nil || sub.Type != typeName {
			return nil
		}
		tags, err := e.Tag(sub)
		if err != nil {
			return nil
		}
		return tags
	default:
		return nil
	}
}

// collectStrings recursively visits a dictionary value and gathers every
// string found, ignoring non-string leaves. Nested maps and arrays are
// traversed; map keys are visited in sorted order for determinism.
func collectStrings(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		out = append(out, collectValueStrings(m[k])...)
	}
	return out
}

func collectValueStrings(v any) []string {
	switch vv := v.(type) {
	case string:
		return []string{vv}
	case map[string]any:
		return collectStrings(vv)
	case []any:
		var out []string
		for _, e := range vv {
			out = append(out, collectValueStrings(e)...)
		}
		return out
	case []string:
		return vv
	default:
		return nil
	}
}

// stringify coerces a scalar or array-of-scalars value into candidate
// strings. Unsupported shapes yield nothing; extraction is best-effort,
// never an error.
func stringify(v any) []string {
	switch vv := v.(type) {
	case nil:
		return nil
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	case []string:
		var out []string
		for _, s := range vv {
			out = append(out, stringify(s)...)
		}
		return out
	case []any:
		var out []string
		for _, e := range vv {
			out = append(out, stringify(e)...)
		}
		return out
	case bool, int, int64, float32, float64:
		return []string{fmt.Sprintf("%v", vv)}
	case time.Time:
		return []string{vv.Format(DefaultDateFormat)}
	default:
		return nil
	}
}

// parseDate accepts the shapes a date field can arrive in: time.Time,
// an RFC 3339 or date-only string, or Unix seconds.
func parseDate(v any) (time.Time, bool) {
	switch vv := v.(type) {
	case time.Time:
		return vv, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, vv); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		return time.Unix(int64(vv), 0).UTC(), true
	case int64:
		return time.Unix(vv, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// HasType reports whether the engine knows the given type.
func (e *Engine) HasType(name string) bool {
	_, ok := e.types[name]
	return ok
}

// TypeNames returns the declared type names in sorted order.
func (e *Engine) TypeNames() []string {
	names := make([]string, 0, len(e.types))
	for name := range e.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns the resolved tag options for a type.
func (e *Engine) Options(typeName string) (schema.TagOptions, bool) {
	ct, ok := e.types[typeName]
	if !ok {
		return schema.TagOptions{}, false
	}
	return ct.opts, true
}

// Plan returns the taggable-field plan for a type, in discovery order.
func (e *Engine) Plan(typeName string) ([]FieldPlan, bool) {
	ct, ok := e.types[typeName]
	if !ok {
		return nil, false
	}
	out := make([]FieldPlan, 0, len(ct.fields))
	for _, fp := range ct.fields {
		out = append(out, fp.FieldPlan)
	}
	return out, true
}
