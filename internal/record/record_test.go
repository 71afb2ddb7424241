package record

import (
	"reflect"
	"testing"
)

func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{
			name:  "string slice passthrough",
			input: []string{"a", "b"},
			want:  []string{"a", "b"},
		},
		{
			name:  "any slice of strings",
			input: []any{"a", "b"},
			want:  []string{"a", "b"},
		},
		{
			name:  "any slice with non-string elements skipped",
			input: []any{"a", 3.0, "b", nil},
			want:  []string{"a", "b"},
		},
		{
			name:  "nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "scalar",
			input: "not-a-slice",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringSlice(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StringSlice(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTagsOf(t *testing.T) {
	fields := map[string]any{
		"tags":     []any{"js", "nodejs"},
		"keywords": []string{"a"},
	}

	if got := TagsOf(fields, "tags"); !reflect.DeepEqual(got, []string{"js", "nodejs"}) {
		t.Errorf("TagsOf(tags) = %v", got)
	}
	if got := TagsOf(fields, "keywords"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("TagsOf(keywords) = %v", got)
	}
	if got := TagsOf(fields, "missing"); got != nil {
		t.Errorf("TagsOf(missing) = %v, want nil", got)
	}
	if got := TagsOf(nil, "tags"); got != nil {
		t.Errorf("TagsOf(nil map) = %v, want nil", got)
	}
}

func TestSetTags(t *testing.T) {
	fields := map[string]any{}
	SetTags(fields, "tags", []string{"go"})

	if got := TagsOf(fields, "tags"); !reflect.DeepEqual(got, []string{"go"}) {
		t.Errorf("round trip = %v, want [go]", got)
	}

	// Writing into a nil map is a no-op, not a panic.
	SetTags(nil, "tags", []string{"go"})
}
