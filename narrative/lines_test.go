package narrative

import "testing"

func TestSplitLines_SentencePunctuation(t *testing.T) {
	got := SplitLines("First line. Second one! Third?")
	want := []string{"First line.", "Second one!", "Third?"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLines_GroupsPunctuationRuns(t *testing.T) {
	got := SplitLines("Wait... what?! Fine.")
	want := []string{"Wait...", "what?!", "Fine."}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitLines_NoTerminalPunctuation(t *testing.T) {
	got := SplitLines("no punctuation at all")
	if len(got) != 1 || got[0] != "no punctuation at all" {
		t.Errorf("got %q, want the whole body as one line", got)
	}
}

func TestSplitLines_Empty(t *testing.T) {
	if got := SplitLines(""); len(got) != 0 {
		t.Errorf("got %q, want no lines", got)
	}
	if got := SplitLines("   "); len(got) != 0 {
		t.Errorf("whitespace body: got %q, want no lines", got)
	}
}

func TestLineSequence_EmptyBodyIsComplete(t *testing.T) {
	s := NewLineSequence("")
	if !s.IsComplete {
		t.Error("empty body must be immediately complete")
	}
	if s.Progress() != 1 {
		t.Errorf("empty body Progress = %v, want 1", s.Progress())
	}
}

func TestLineSequence_ProgressCountsRevealedChars(t *testing.T) {
	s := NewLineSequence("abcde. fghij.")
	if s.Progress() != 0 {
		t.Errorf("initial Progress = %v, want 0", s.Progress())
	}

	s.DisplayedText = "abc"
	if p := s.Progress(); p <= 0 || p >= 0.5 {
		t.Errorf("partial first line Progress = %v, want in (0,0.5)", p)
	}

	s.DisplayedText = "abcde."
	s.advance()
	s.DisplayedText = "fghij."
	if p := s.Progress(); p != 1 {
		t.Errorf("fully revealed Progress = %v, want 1", p)
	}
}
