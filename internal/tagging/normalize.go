package tagging

import "strings"

// Tokens lowercases and tokenizes every candidate and flattens the results
// into one sequence. Empty candidates are dropped. No stopword filtering
// and no deduplication; Normalize layers those on top.
func Tokens(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if v == "" {
			continue
		}
		out = append(out, Tokenize(strings.ToLower(v))...)
	}
	return out
}

// Normalize reduces raw candidate strings to the canonical tag set:
// drop empties, lowercase, tokenize, flatten, remove stopwords, and
// deduplicate preserving first-seen order. Normalizing an already
// canonical set returns it unchanged.
func Normalize(vals ...string) []string {
	toks := Tokens(vals...)
	kept := make([]string, 0, len(toks))
	for _, tok := range toks {
		if IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return Dedupe(kept)
}

// Dedupe removes duplicate tokens preserving first-seen order.
func Dedupe(toks []string) []string {
	out := make([]string, 0, len(toks))
	seen := make(map[string]bool, len(toks))
	for _, tok := range toks {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
