package ops

import (
	"github.com/hpungsan/autotag/internal/schema"
	"github.com/hpungsan/autotag/internal/tagging"
)

// TypeInfo describes one declared record type: its taggable-field plan
// and resolved tag options, storage hints forwarded verbatim.
type TypeInfo struct {
	Name    string              `json:"name"`
	Fields  []tagging.FieldPlan `json:"fields"`
	Options schema.TagOptions   `json:"options"`
}

// TypesOutput contains the result of the Types operation.
type TypesOutput struct {
	Types []TypeInfo `json:"types"`
}

// Types enumerates the declared record types in sorted order.
func Types(eng *tagging.Engine) *TypesOutput {
	names := eng.TypeNames()
	out := &TypesOutput{Types: make([]TypeInfo, 0, len(names))}
	for _, name := range names {
		plan, _ := eng.Plan(name)
		opts, _ := eng.Options(name)
		out.Types = append(out.Types, TypeInfo{
			Name:    name,
			Fields:  plan,
			Options: opts,
		})
	}
	return out
}
