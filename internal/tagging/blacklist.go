package tagging

import "regexp"

// envSepRegex splits environment-supplied blacklists on commas or whitespace.
var envSepRegex = regexp.MustCompile(`[\s,]+`)

// Blacklist is a set of words excluded from derived tags. Both the listed
// words and the candidates are compared in tokenized, lowercased form, so
// case and whitespace variants of a blacklisted word are reliably caught.
// A nil Blacklist filters nothing.
type Blacklist struct {
	words map[string]bool
}

// NewBlacklist merges word sources (process-wide environment list, config
// global list, per-type list) into one blacklist. Multi-word entries are
// tokenized, so "Objective C" blocks both "objective" and "c".
func NewBlacklist(sources ...[]string) *Blacklist {
	words := make(map[string]bool)
	for _, src := range sources {
		for _, tok := range Tokens(src...) {
			words[tok] = true
		}
	}
	return &Blacklist{words: words}
}

// SplitWords parses a comma- or whitespace-separated word list, the format
// the AUTOTAG_BLACKLIST environment variable uses.
func SplitWords(s string) []string {
	parts := envSepRegex.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Filter tokenizes the candidates and subtracts the blacklisted words,
// preserving order and duplicates. This pass runs before stopword removal;
// the two subtractions are independent and composed by the engine.
func (b *Blacklist) Filter(vals ...string) []string {
	toks := Tokens(vals...)
	if b == nil || len(b.words) == 0 {
		return toks
	}
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		if b.words[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Len returns the number of distinct blacklisted words.
func (b *Blacklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.words)
}
