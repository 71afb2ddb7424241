package tagging

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "empty input yields empty set",
			input: nil,
			want:  []string{},
		},
		{
			name:  "empty entries dropped",
			input: []string{"", "js", ""},
			want:  []string{"js"},
		},
		{
			name:  "lowercases",
			input: []string{"JS", "NODEJS"},
			want:  []string{"js", "nodejs"},
		},
		{
			name:  "phrase splitting",
			input: []string{"js ninja", "nodejs"},
			want:  []string{"js", "ninja", "nodejs"},
		},
		{
			name:  "stopword removal",
			input: []string{"js and ninja", "nodejs with express"},
			want:  []string{"js", "ninja", "nodejs", "express"},
		},
		{
			name:  "multi-language stopwords",
			input: []string{"go para siempre", "code und mehr"},
			want:  []string{"go", "siempre", "code", "mehr"},
		},
		{
			name:  "dedupe preserves first-seen order",
			input: []string{"beta", "alpha", "beta", "gamma", "alpha"},
			want:  []string{"beta", "alpha", "gamma"},
		},
		{
			name:  "single-character and numeric tokens preserved",
			input: []string{"2000", "x"},
			want:  []string{"2000", "x"},
		},
		{
			name:  "already lowercase single word is a no-op",
			input: []string{"nodejs"},
			want:  []string{"nodejs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Normalization is a projection: re-normalizing an already normalized set
// returns the identical set.
func TestNormalize_FixedPoint(t *testing.T) {
	inputs := [][]string{
		{"JS ninja", "nodejs", "the quick-brown fox"},
		{"2000", "January", "Saturday"},
		{"alpha", "beta", "gamma"},
	}

	for _, input := range inputs {
		once := Normalize(input...)
		twice := Normalize(once...)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize not a fixed point: %v -> %v -> %v", input, once, twice)
		}
	}
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	upper := Normalize("JS", "NODEJS")
	lower := Normalize("js", "nodejs")
	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("case variants differ: %v vs %v", upper, lower)
	}
}

func TestTokens_NoStopwordPass(t *testing.T) {
	got := Tokens("js and ninja")
	want := []string{"js", "and", "ninja"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v (stopwords must survive)", got, want)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe = %v, want %v", got, want)
	}
}

func TestIsStopword(t *testing.T) {
	for _, w := range []string{"and", "with", "para", "und", "avec", "nao"} {
		if !IsStopword(w) {
			t.Errorf("IsStopword(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"nodejs", "go", "ninja"} {
		if IsStopword(w) {
			t.Errorf("IsStopword(%q) = true, want false", w)
		}
	}
}
