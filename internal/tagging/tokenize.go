package tagging

import "regexp"

// wordRegex matches runs of word characters (letters, digits, underscore).
// Anything else acts as a separator, so "node-js" and "js ninja" each
// tokenize into two words.
var wordRegex = regexp.MustCompile(`\w+`)

// Tokenize splits free text into word tokens. Pure function, no state.
// Text with no word characters yields nil.
func Tokenize(s string) []string {
	return wordRegex.FindAllString(s, -1)
}
