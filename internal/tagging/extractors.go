package tagging

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractorFunc overrides the default extraction policy for a field. It
// receives the raw field value and its return value replaces the default
// candidate; the result still passes through blacklist filtering and
// normalization downstream.
type ExtractorFunc func(v any) any

// extractors maps registered extractor names to their functions. Schema
// declarations reference extractors by name.
var extractors = map[string]ExtractorFunc{
	"markdown": extractMarkdown,
	"filename": extractFilename,
}

// RegisterExtractor makes a custom extractor available to schema
// declarations under the given name. Call before building the engine;
// the registry is not guarded for concurrent mutation.
func RegisterExtractor(name string, fn ExtractorFunc) {
	extractors[name] = fn
}

// LookupExtractor returns the extractor registered under name.
func LookupExtractor(name string) (ExtractorFunc, bool) {
	fn, ok := extractors[name]
	return fn, ok
}

var markdown = goldmark.New()

// extractMarkdown parses a markdown field and keeps only its prose text,
// so heading markers, link URLs, and code blocks never become tags.
func extractMarkdown(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	source := []byte(s)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			buf.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// extractFilename reduces a path-valued field to its base name without
// the extension, e.g. "/docs/road map.PDF" becomes "road map".
func extractFilename(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	base := filepath.Base(s)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
