package progress

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Phase is the signal's position in its lifecycle.
type Phase int

const (
	// PhaseFadingIn ramps the indicator from invisible to full visibility.
	PhaseFadingIn Phase = iota
	// PhaseRunning holds the indicator at full visibility.
	PhaseRunning
	// PhaseFadingOut ramps the indicator back to invisible.
	PhaseFadingOut
	// PhaseDone is terminal; the visual resource is released.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFadingIn:
		return "fading-in"
	case PhaseRunning:
		return "running"
	case PhaseFadingOut:
		return "fading-out"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Animation constants, tuned to match the original overlay's feel.
const (
	// TicksPerSecond is the animation frame rate.
	TicksPerSecond = 30

	// TickInterval is the period of one animation frame.
	TickInterval = time.Second / TicksPerSecond

	// MinVisibleDuration is the floor on how long the indicator stays up.
	// Fast operations still show it this long so completion never looks
	// like a flicker; slow operations are not capped.
	MinVisibleDuration = 2 * time.Second

	maxOpacity  = 0.93
	fadeInStep  = 0.09
	fadeOutStep = 0.07
)

// Signal is the state machine behind the "operation in progress"
// indicator. It is advanced by a single periodic Tick caller (the
// animation loop); RequestFinish is the only external input edge and may
// be called from any goroutine.
type Signal struct {
	mu      sync.Mutex
	phase   Phase
	opacity float64

	// showUntil is the earliest instant FadingOut may begin.
	showUntil  time.Time
	minVisible time.Duration
	now        func() time.Time

	finishRequested atomic.Bool
}

// Option configures a Signal.
type Option func(*Signal)

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signal) {
		s.now = now
	}
}

// WithMinVisible overrides the minimum visible duration.
func WithMinVisible(d time.Duration) Option {
	return func(s *Signal) {
		s.minVisible = d
	}
}

// New creates a Signal in PhaseFadingIn with the earliest-dismiss deadline
// set to now + MinVisibleDuration.
func New(opts ...Option) *Signal {
	s := &Signal{
		phase:      PhaseFadingIn,
		minVisible: MinVisibleDuration,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.showUntil = s.now().Add(s.minVisible)
	return s
}

// RequestFinish arms the exit condition: once the minimum visible duration
// has elapsed, the signal fades out. Idempotent, safe from any goroutine,
// and valid at any time, including before fade-in completes.
func (s *Signal) RequestFinish() {
	s.finishRequested.Store(true)
}

// Tick advances the animation by one frame and returns the phase after
// the advance. It must be called from a single goroutine.
func (s *Signal) Tick() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseFadingIn:
		s.opacity += fadeInStep
		if s.opacity >= maxOpacity {
			s.opacity = maxOpacity
			s.phase = PhaseRunning
		}
	case PhaseFadingOut:
		s.opacity -= fadeOutStep
		if s.opacity <= 0 {
			s.opacity = 0
			s.phase = PhaseDone
		}
	}

	// Begin fading once finish was requested AND the floor has elapsed.
	if s.phase == PhaseRunning &&
		s.finishRequested.Load() &&
		!s.now().Before(s.showUntil) {
		s.phase = PhaseFadingOut
	}

	return s.phase
}

// Phase returns the current phase.
func (s *Signal) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Opacity returns the current opacity in [0, maxOpacity].
func (s *Signal) Opacity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opacity
}

// Done reports whether the signal reached its terminal phase.
func (s *Signal) Done() bool {
	return s.Phase() == PhaseDone
}

// Run drives the animation loop at the frame rate, invoking render after
// every tick, until the signal is done or ctx is cancelled. render may be
// nil. Run returns the final phase.
func (s *Signal) Run(ctx context.Context, render func(phase Phase, opacity float64)) Phase {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.Phase()
		case <-ticker.C:
			phase := s.Tick()
			if render != nil {
				render(phase, s.Opacity())
			}
			if phase == PhaseDone {
				return phase
			}
		}
	}
}
