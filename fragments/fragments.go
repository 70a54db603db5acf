// Package fragments manifests short memory phrases around the main text.
// Visibility is stateless per render: tier tag plus reading progress decide
// it; motion and opacity belong to the per-fragment view.
package fragments

import (
	"math"

	"github.com/RBarkerArt/delta7-sub000/coherence"
	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

// Fragment is one piece of manifestable content.
type Fragment struct {
	ID        string
	Text      string
	Tier      coherence.Tier
	Threshold float64 // Reading progress in [0,1] needed before it shows
}

// Visible reports whether frag should manifest right now. A fragment shows
// only while its tagged tier is active and the reader has gotten far enough
// through the body. When nothing in the set tags the active tier, the first
// fragment is tier-eligible everywhere so single-fragment content written
// before tier tags keeps working.
func Visible(frag Fragment, set []Fragment, active coherence.Tier, progress float64, complete bool) bool {
	eligible := frag.Tier == active
	if !eligible && len(set) > 0 && frag.ID == set[0].ID && !anyTagged(set, active) {
		eligible = true
	}
	if !eligible {
		return false
	}
	return complete || progress >= frag.Threshold
}

func anyTagged(set []Fragment, active coherence.Tier) bool {
	for _, f := range set {
		if f.Tier == active {
			return true
		}
	}
	return false
}

// View carries one fragment's motion: a slow drift/bounce around an anchor
// and a distance-from-center weighted opacity. Neither depends on the
// score; degradation speaks through visibility, not through motion.
type View struct {
	Fragment Fragment

	anchorX, anchorY float64 // Normalized [0,1] viewport position
	driftRate        float64
	bounceRate       float64
	phase            float64
	elapsed          float64
}

func NewView(frag Fragment, rng *common.SeededRNG) *View {
	return &View{
		Fragment:   frag,
		anchorX:    0.1 + rng.Random()*0.8,
		anchorY:    0.12 + rng.Random()*0.76,
		driftRate:  0.08 + rng.Random()*0.1,
		bounceRate: 0.12 + rng.Random()*0.14,
		phase:      rng.Random() * 2 * math.Pi,
	}
}

// Step advances the drift clock by dt seconds.
func (v *View) Step(dt float64) { v.elapsed += dt }

// Pos returns the current viewport position.
func (v *View) Pos(width, height float64) (x, y float64) {
	x = (v.anchorX + 0.025*math.Sin(v.elapsed*v.driftRate*2*math.Pi+v.phase)) * width
	y = (v.anchorY + 0.02*math.Sin(v.elapsed*v.bounceRate*2*math.Pi+v.phase*1.7)) * height
	return x, y
}

// Opacity weights by normalized distance from the viewport center:
// fragments haunt the margins and stay faint over the main text.
func (v *View) Opacity(width, height float64) float64 {
	x, y := v.Pos(width, height)
	dx := x/width - 0.5
	dy := y/height - 0.5
	dist := math.Sqrt(dx*dx+dy*dy) / 0.5
	if dist > 1 {
		dist = 1
	}
	return 0.12 + 0.5*dist
}

// FragmentFont styles the manifested phrases.
const FragmentFont = "italic 15px monospace"

// Manager owns the active fragment set and its views.
type Manager struct {
	rng   *common.SeededRNG
	set   []Fragment
	views []*View
}

func NewManager(rng *common.SeededRNG) *Manager {
	return &Manager{rng: rng}
}

// SetFragments swaps the fragment set, building fresh views. Called on
// every content push.
func (m *Manager) SetFragments(set []Fragment) {
	m.set = set
	m.views = make([]*View, len(set))
	for i, f := range set {
		m.views[i] = NewView(f, m.rng)
	}
}

// Step advances every view by dt seconds.
func (m *Manager) Step(dt float64) {
	for _, v := range m.views {
		v.Step(dt)
	}
}

// VisibleViews returns the views whose fragments manifest under the given
// reading state.
func (m *Manager) VisibleViews(active coherence.Tier, progress float64, complete bool) []*View {
	var out []*View
	for _, v := range m.views {
		if Visible(v.Fragment, m.set, active, progress, complete) {
			out = append(out, v)
		}
	}
	return out
}

// Draw paints every visible fragment.
func (m *Manager) Draw(ctx platform.Canvas2D, width, height float64, active coherence.Tier, progress float64, complete bool) {
	views := m.VisibleViews(active, progress, complete)
	if len(views) == 0 {
		return
	}
	ctx.Save()
	ctx.SetFont(FragmentFont)
	for _, v := range views {
		x, y := v.Pos(width, height)
		ctx.SetGlobalAlpha(v.Opacity(width, height))
		ctx.SetFillStyle("rgba(200,205,220,1)")
		ctx.FillText(v.Fragment.Text, x, y)
	}
	ctx.Restore()
}
