// Package progress models the "operation in progress" indicator as an
// explicit state machine, decoupled from the operation's actual duration.
//
// The lifecycle is FadingIn -> Running -> FadingOut -> Done. The machine
// is advanced one frame at a time by Tick, driven by a periodic loop (Run)
// on its own goroutine. The owning operation signals completion with
// RequestFinish from its own goroutine; the indicator still stays visible
// for at least MinVisibleDuration so a fast operation never looks like a
// flicker, while slow operations are never capped.
package progress
