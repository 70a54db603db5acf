// Package narrative turns a day's log entry into what the visitor actually
// reads: the body split into sentence lines, revealed by a typewriter whose
// cadence degrades with coherence, with ambient corruption re-rolled on top.
package narrative

import "strings"

// SplitLines breaks a body into sentence-sized lines on terminal
// punctuation, keeping the punctuation with its sentence. A body with no
// terminal punctuation is a single line.
func SplitLines(body string) []string {
	var lines []string
	var sb strings.Builder

	flush := func() {
		line := strings.TrimSpace(sb.String())
		if line != "" {
			lines = append(lines, line)
		}
		sb.Reset()
	}

	runes := []rune(body)
	for i, r := range runes {
		sb.WriteRune(r)
		if !isTerminal(r) {
			continue
		}
		// Group runs of punctuation ("...", "?!") into one boundary.
		if i+1 < len(runes) && isTerminal(runes[i+1]) {
			continue
		}
		flush()
	}
	flush()
	return lines
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

// LineSequence is the reveal state for one body of text. The typewriter
// mutates it; everything else only reads it.
type LineSequence struct {
	Lines            []string
	CurrentLineIndex int
	DisplayedText    string // Revealed prefix of the current line
	IsTyping         bool
	IsComplete       bool

	totalChars int
	doneChars  int // Characters in fully revealed earlier lines
}

// NewLineSequence builds the sequence for a body. An empty body yields an
// already-complete sequence with no lines.
func NewLineSequence(body string) *LineSequence {
	s := &LineSequence{Lines: SplitLines(body)}
	for _, line := range s.Lines {
		s.totalChars += len([]rune(line))
	}
	if len(s.Lines) == 0 {
		s.IsComplete = true
	}
	return s
}

// CurrentLine returns the line being revealed, or "" past the end.
func (s *LineSequence) CurrentLine() string {
	if s.CurrentLineIndex >= len(s.Lines) {
		return ""
	}
	return s.Lines[s.CurrentLineIndex]
}

// Progress reports reading progress through the whole body in [0,1],
// counting revealed characters. An empty body is fully read.
func (s *LineSequence) Progress() float64 {
	if s.totalChars == 0 {
		return 1
	}
	revealed := s.doneChars + len([]rune(s.DisplayedText))
	p := float64(revealed) / float64(s.totalChars)
	if p > 1 {
		p = 1
	}
	return p
}

// advance moves to the next line, folding the finished one into doneChars.
func (s *LineSequence) advance() {
	s.doneChars += len([]rune(s.CurrentLine()))
	s.CurrentLineIndex++
	s.DisplayedText = ""
}
