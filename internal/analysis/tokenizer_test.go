package analysis

import (
	"reflect"
	"testing"
)

func TestTokenize_PunctuationAndStopWords(t *testing.T) {
	tok := NewTokenizer(nil)
	got := tok.Tokenize("Hello, World! a an")
	want := []string{"hello", "world"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	tok := NewTokenizer(nil)
	if got := tok.Tokenize(""); len(got) != 0 {
		t.Errorf("expected no tokens for empty input, got %v", got)
	}
	if got := tok.Tokenize("   \t\n  "); len(got) != 0 {
		t.Errorf("expected no tokens for whitespace input, got %v", got)
	}
	if got := tok.Tokenize("!!! ??? ..."); len(got) != 0 {
		t.Errorf("expected no tokens for punctuation-only input, got %v", got)
	}
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	tok := NewTokenizer([]string{})
	got := tok.Tokenize("I x go run")
	want := []string{"go", "run"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_PreservesOrderAndCase(t *testing.T) {
	tok := NewTokenizer(nil)
	got := tok.Tokenize("Morning-Meditation: 10 minutes")
	want := []string{"morning", "meditation", "10", "minutes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_CustomStopWords(t *testing.T) {
	tok := NewTokenizer([]string{"meditation"})
	got := tok.Tokenize("morning meditation")
	want := []string{"morning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}

	// Empty (non-nil) stop word list disables filtering entirely.
	tok = NewTokenizer([]string{})
	got = tok.Tokenize("the morning")
	want = []string{"the", "morning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_Unicode(t *testing.T) {
	tok := NewTokenizer(nil)
	got := tok.Tokenize("Café wohlfühlen")
	want := []string{"café", "wohlfühlen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
