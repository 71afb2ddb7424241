// Package schema holds the static type declarations the tagging engine is
// compiled from. Declarations come from the config file, not from runtime
// reflection: a record type is a named map of field declarations plus the
// tag-derivation options for that type.
package schema

import (
	"encoding/json"
	"sort"

	"github.com/hpungsan/autotag/internal/errors"
)

// FieldKind identifies the value shape of a declared field. Extraction
// dispatches on this closed set rather than on open-ended type checks.
type FieldKind string

const (
	KindText   FieldKind = "text"   // string or array of strings
	KindNumber FieldKind = "number" // numeric scalar
	KindDate   FieldKind = "date"   // time.Time, RFC 3339 string, or Unix seconds
	KindMap    FieldKind = "map"    // string-valued dictionary, possibly nested
	KindRecord FieldKind = "record" // embedded sub-record of another declared type
	KindRef    FieldKind = "ref"    // reference to another record; only populated values contribute
)

// Lifecycle hook points for automatic tag derivation.
const (
	HookValidate = "validate" // before put-level validation (default)
	HookSave     = "save"     // right before the write
	HookNone     = "none"     // never derive automatically
)

// FieldDef declares one field of a record type.
type FieldDef struct {
	Kind     FieldKind `json:"kind"`
	Taggable bool      `json:"taggable,omitempty"`
	// Of names the declared type a record/ref field points at.
	Of string `json:"of,omitempty"`
	// Extractor names a registered extractor that overrides the default
	// extraction policy for this field.
	Extractor string `json:"extractor,omitempty"`
}

// TagOptions configures tag derivation for one record type.
// Index, Searchable, Hide, Exportable, and Duplicate are storage hints:
// the pipeline forwards them to the store layer without interpreting them.
type TagOptions struct {
	Path      string     `json:"path,omitempty"`      // tag field name, default "tags"
	Blacklist StringList `json:"blacklist,omitempty"` // string or list of strings
	Fresh     bool       `json:"fresh,omitempty"`     // discard prior tags on each derivation
	Hook      string     `json:"hook,omitempty"`      // validate|save|none, default validate

	Index      bool  `json:"index,omitempty"`
	Searchable bool  `json:"searchable,omitempty"`
	Hide       bool  `json:"hide,omitempty"`
	Exportable *bool `json:"exportable,omitempty"` // default true
	Duplicate  bool  `json:"duplicate,omitempty"`
}

// TypeDef declares one record type.
type TypeDef struct {
	Fields map[string]FieldDef `json:"fields"`
	Tags   TagOptions          `json:"tags,omitempty"`
}

// Options returns the type's tag options with defaults applied.
func (t *TypeDef) Options() TagOptions {
	o := t.Tags
	if o.Path == "" {
		o.Path = "tags"
	}
	if o.Hook == "" {
		o.Hook = HookValidate
	}
	return o
}

// CanExport reports whether the tag field should appear in exports.
func (o TagOptions) CanExport() bool {
	return o.Exportable == nil || *o.Exportable
}

// FieldNames returns the declared field names in lexicographic order.
// JSON objects carry no declaration order, so this is the discovery order
// the extractor uses; it only matters for determinism.
func (t *TypeDef) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// knownKinds is the closed set of value shapes extraction understands.
var knownKinds = map[FieldKind]bool{
	KindText:   true,
	KindNumber: true,
	KindDate:   true,
	KindMap:    true,
	KindRecord: true,
	KindRef:    true,
}

// knownHooks is the set of lifecycle points auto-derivation can bind to.
var knownHooks = map[string]bool{
	HookValidate: true,
	HookSave:     true,
	HookNone:     true,
}

// Validate checks a set of type declarations for structural problems:
// unknown field kinds, record/ref fields without a target, targets naming
// undeclared types, and unknown hook names. Extractor names are validated
// later, when the engine compiles against its extractor registry.
func Validate(types map[string]*TypeDef) error {
	for typeName, def := range types {
		if def == nil || len(def.Fields) == 0 {
			return errors.NewInvalidSchema(typeName, "", "type declares no fields")
		}
		opts := def.Options()
		if !knownHooks[opts.Hook] {
			return errors.NewInvalidSchema(typeName, "", "unknown hook "+opts.Hook)
		}
		for _, fieldName := range def.FieldNames() {
			fd := def.Fields[fieldName]
			if !knownKinds[fd.Kind] {
				return errors.NewInvalidSchema(typeName, fieldName, "unknown kind "+string(fd.Kind))
			}
			switch fd.Kind {
			case KindRecord, KindRef:
				if fd.Of == "" {
					return errors.NewInvalidSchema(typeName, fieldName, "record/ref field requires of")
				}
				if _, ok := types[fd.Of]; !ok {
					return errors.NewInvalidSchema(typeName, fieldName, "of names undeclared type "+fd.Of)
				}
			default:
				if fd.Of != "" {
					return errors.NewInvalidSchema(typeName, fieldName, "of is only valid on record/ref fields")
				}
			}
		}
	}
	return nil
}

// StringList unmarshals from either a JSON string or an array of strings,
// so config can write `"blacklist": "js"` or `"blacklist": ["js", "node"]`.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}
