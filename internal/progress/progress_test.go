package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a hand-advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// tickUntil advances the signal up to max ticks or until the phase is
// reached, returning the number of ticks taken.
func tickUntil(t *testing.T, s *Signal, want Phase, max int) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		if s.Tick() == want {
			return i
		}
	}
	t.Fatalf("phase %v not reached within %d ticks (now %v)", want, max, s.Phase())
	return 0
}

func TestFadeInReachesRunning(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))

	require.Equal(t, PhaseFadingIn, s.Phase())
	assert.Zero(t, s.Opacity())

	ticks := tickUntil(t, s, PhaseRunning, 100)

	// ceil(0.93 / 0.09) = 11 frames to full visibility.
	assert.Equal(t, 11, ticks)
	assert.InDelta(t, maxOpacity, s.Opacity(), 1e-9)
}

func TestNeverFadesOutBeforeMinVisible(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))

	// Finish requested immediately, even before fade-in completes.
	s.RequestFinish()

	// Many frames within the floor: must not leave Running.
	for i := 0; i < 300; i++ {
		phase := s.Tick()
		assert.NotEqual(t, PhaseFadingOut, phase)
		assert.NotEqual(t, PhaseDone, phase)
	}
	assert.Equal(t, PhaseRunning, s.Phase())

	// Once the floor elapses, the next tick starts the fade.
	clock.Advance(MinVisibleDuration)
	assert.Equal(t, PhaseFadingOut, s.Tick())
}

func TestStaysRunningUntilFinishRequested(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))

	tickUntil(t, s, PhaseRunning, 100)
	clock.Advance(10 * MinVisibleDuration)

	// No finish request: holds at Running indefinitely.
	for i := 0; i < 100; i++ {
		assert.Equal(t, PhaseRunning, s.Tick())
	}

	s.RequestFinish()
	assert.Equal(t, PhaseFadingOut, s.Tick())
}

func TestFadeOutReachesDone(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))
	s.RequestFinish()

	tickUntil(t, s, PhaseRunning, 100)
	clock.Advance(MinVisibleDuration)

	ticks := tickUntil(t, s, PhaseDone, 100)

	// ceil(0.93 / 0.07) = 14 frames back to zero.
	assert.Equal(t, 14, ticks)
	assert.Zero(t, s.Opacity())
	assert.True(t, s.Done())
}

func TestDoneIsTerminal(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now), WithMinVisible(0))
	s.RequestFinish()

	tickUntil(t, s, PhaseDone, 100)

	for i := 0; i < 10; i++ {
		assert.Equal(t, PhaseDone, s.Tick())
	}
}

func TestRequestFinishIdempotent(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now), WithMinVisible(0))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RequestFinish()
		}()
	}
	wg.Wait()

	tickUntil(t, s, PhaseDone, 100)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "fading-in", PhaseFadingIn.String())
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "fading-out", PhaseFadingOut.String())
	assert.Equal(t, "done", PhaseDone.String())
}

func TestRun_CompletesAfterFinish(t *testing.T) {
	s := New(WithMinVisible(0))
	s.RequestFinish()

	var frames int
	phase := s.Run(context.Background(), func(Phase, float64) {
		frames++
	})

	assert.Equal(t, PhaseDone, phase)
	assert.Greater(t, frames, 0)
}

func TestRun_ContextCancel(t *testing.T) {
	s := New() // finish never requested

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	phase := s.Run(ctx, nil)
	assert.NotEqual(t, PhaseDone, phase)
}
