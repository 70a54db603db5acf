// Package coherence maps the 0-100 coherence score onto the five discrete
// degradation tiers that every other subsystem keys its behavior on.
package coherence

// Tier is one of five ordered coherence bands. Lower values are more stable.
type Tier int

const (
	Stable Tier = iota
	Recovering
	Fraying
	Fragmented
	Critical
)

// Fixed score breakpoints. A score exactly on a breakpoint belongs to the
// higher (more stable) tier.
const (
	StableMin     = 80.0
	RecoveringMin = 60.0
	FrayingMin    = 40.0
	FragmentedMin = 20.0
)

var tierNames = [...]string{"stable", "recovering", "fraying", "fragmented", "critical"}

func (t Tier) String() string {
	if t < Stable || t > Critical {
		return "unknown"
	}
	return tierNames[t]
}

// MoreStableThan reports whether t is a more stable band than other.
func (t Tier) MoreStableThan(other Tier) bool {
	return t < other
}

// Reading is the result of classifying a score: the tier it falls in and how
// far through the tier's band it has degraded. Severity is 0 when the score
// just entered the tier from above and approaches 1 as the score nears the
// next breakpoint down.
type Reading struct {
	Tier     Tier
	Severity float64
}

// Classify maps a score to its tier and in-band severity. Pure and total:
// out-of-range scores are clamped to [0,100].
func Classify(score float64) Reading {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	switch {
	case score >= StableMin:
		return Reading{Stable, severity(score, StableMin, 100)}
	case score >= RecoveringMin:
		return Reading{Recovering, severity(score, RecoveringMin, StableMin)}
	case score >= FrayingMin:
		return Reading{Fraying, severity(score, FrayingMin, RecoveringMin)}
	case score >= FragmentedMin:
		return Reading{Fragmented, severity(score, FragmentedMin, FrayingMin)}
	default:
		return Reading{Critical, severity(score, 0, FragmentedMin)}
	}
}

// ClassifyTier is Classify without the severity component.
func ClassifyTier(score float64) Tier {
	return Classify(score).Tier
}

// severity inverts the normalized in-band position so that the top of the
// band reads 0 and the bottom reads 1.
func severity(score, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	s := 1 - (score-lo)/(hi-lo)
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return s
}
