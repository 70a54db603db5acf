package narrative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RBarkerArt/delta7-sub000/common"
	"github.com/RBarkerArt/delta7-sub000/platform"
)

func newTestReroller(seed uint32, source func() string) (*Reroller, *platform.ManualScheduler) {
	sched := platform.NewManualScheduler()
	rng := common.NewSeededRNG(seed)
	return NewReroller(sched, NewCorruptor(Config{}, rng), rng, source), sched
}

func TestReroller_RestartRollsImmediately(t *testing.T) {
	r, sched := newTestReroller(42, func() string { return "A quiet line." })

	var got []Rendering
	r.OnChange = func(rd Rendering) { got = append(got, rd) }

	r.Restart()
	require.Len(t, got, 1)
	assert.Equal(t, "A quiet line.", got[0].Text, "full coherence renders untouched")
	assert.Equal(t, 1, sched.PendingTimers(), "the cycle keeps one roll queued")

	// Restarting replaces the pending roll instead of stacking a second.
	r.Restart()
	assert.Equal(t, 1, sched.PendingTimers())
}

func TestReroller_RefreshNotifiesOnClearedSource(t *testing.T) {
	line := "Still here."
	r, _ := newTestReroller(42, func() string { return line })

	var got []Rendering
	r.OnChange = func(rd Rendering) { got = append(got, rd) }

	r.Refresh()
	require.Len(t, got, 1)
	require.NotEmpty(t, got[0].Text)

	// The source going empty must reach the host the same way.
	line = ""
	r.Refresh()
	require.Len(t, got, 2)
	assert.Equal(t, Rendering{}, got[1])
	assert.Equal(t, Rendering{}, r.Current())
}

func TestReroller_PaceFollowsTier(t *testing.T) {
	rolls := func(score float64) int {
		r, sched := newTestReroller(42, func() string { return "Shimmer." })
		r.SetScore(score)
		n := 0
		r.OnChange = func(Rendering) { n++ }
		r.Restart()
		sched.Advance(30 * time.Second)
		r.Teardown()
		return n
	}

	stable := rolls(100)
	critical := rolls(5)
	assert.Greater(t, critical, stable*3, "CRITICAL must re-roll far more often: %d vs %d", critical, stable)
}

func TestReroller_TeardownStopsCycle(t *testing.T) {
	r, sched := newTestReroller(42, func() string { return "Gone soon." })
	r.Restart()
	require.Equal(t, 1, sched.PendingTimers())

	r.Teardown()
	assert.Equal(t, 0, sched.PendingTimers())

	fired := false
	r.OnChange = func(Rendering) { fired = true }
	sched.Advance(time.Minute)
	assert.False(t, fired, "no roll may fire after teardown")
}
