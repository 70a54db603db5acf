package narrative

import (
	"strings"
	"unicode"

	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/common"
)

// WhisperMark brackets a spliced hidden phrase inside Rendering.Text. Hosts
// style the bracketed span invisible but selectable; the marker itself is a
// zero-width space so unstyled text stays readable.
const WhisperMark = "\u200b"

// Rendering is one corrupted view of a line, ready for a host to style.
type Rendering struct {
	Text          string
	SpacingJitter float64 // Extra letter spacing, em
	Echo          bool    // Draw a displaced duplicate behind the text
	EchoOffset    float64 // Echo displacement, px
	Whisper       string  // Hidden phrase spliced into Text, "" when none
}

// Corruptor produces degradation renderings of text. Every draw comes from
// the injected RNG, so a seeded run replays the same corruption.
type Corruptor struct {
	cfg Config
	rng *common.SeededRNG
}

func NewCorruptor(cfg Config, rng *common.SeededRNG) *Corruptor {
	return &Corruptor{cfg: cfg.Normalize(), rng: rng}
}

// Corrupt renders one view of line at the given score. At score 100 the
// text comes back untouched; every corruption chance scales with lost
// coherence, and the heavier forms are gated by tier.
func (c *Corruptor) Corrupt(line string, score float64) Rendering {
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	tier := coherence.ClassifyTier(score)
	lost := (100 - score) / 100

	text := line
	if tier == coherence.Fragmented || tier == coherence.Critical {
		text = c.driftWords(text, lost)
	}
	text = c.substituteChars(text, lost)

	r := Rendering{Text: text}

	if score < 60 {
		r.SpacingJitter = c.rng.Random() * lost * c.cfg.JitterMaxSpacing
	}
	if c.rng.Chance(lost * c.cfg.EchoMaxChance) {
		r.Echo = true
		r.EchoOffset = 1 + c.rng.Random()*2
	}
	if tier == coherence.Critical && c.rng.Chance(c.cfg.WhisperChance) {
		r.Whisper = c.cfg.WhisperVocabulary[c.rng.Pick(len(c.cfg.WhisperVocabulary))]
		r.Text = c.splice(r.Text, r.Whisper)
	}
	return r
}

// driftWords degrades whole words: most drifted words lose their vowels,
// the rest are blacked out entirely.
func (c *Corruptor) driftWords(text string, lost float64) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		if letterCount(w) < 4 || !c.rng.Chance(lost*c.cfg.MaxDriftChance) {
			continue
		}
		if c.rng.Chance(0.35) {
			words[i] = c.cfg.RedactionToken
		} else {
			words[i] = hollow(w)
		}
	}
	return strings.Join(words, " ")
}

// substituteChars swaps individual glyphs for noise. The chance is zero at
// score 100 so a stable reading is byte-identical to the source.
func (c *Corruptor) substituteChars(text string, lost float64) string {
	p := lost * c.cfg.MaxCharSubChance
	if p <= 0 {
		return text
	}
	glyphs := []rune(c.cfg.GlyphSet)
	ghosts := []rune(c.cfg.GhostGlyphs)

	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsSpace(r) || !c.rng.Chance(p) {
			continue
		}
		if c.rng.Chance(c.cfg.GhostFraction) {
			runes[i] = ghosts[c.rng.Pick(len(ghosts))]
		} else {
			runes[i] = glyphs[c.rng.Pick(len(glyphs))]
		}
	}
	return string(runes)
}

// splice inserts the whisper at a random word boundary, bracketed by
// WhisperMark on both sides.
func (c *Corruptor) splice(text, whisper string) string {
	words := strings.Split(text, " ")
	at := c.rng.Pick(len(words) + 1)
	marked := WhisperMark + whisper + WhisperMark

	out := make([]string, 0, len(words)+1)
	out = append(out, words[:at]...)
	out = append(out, marked)
	out = append(out, words[at:]...)
	return strings.Join(out, " ")
}

// hollow replaces a word's vowels with underscores.
func hollow(w string) string {
	runes := []rune(w)
	for i, r := range runes {
		if strings.ContainsRune("aeiouAEIOU", r) {
			runes[i] = '_'
		}
	}
	return string(runes)
}

func letterCount(w string) int {
	n := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
