// Package driver paces a search.Engine from the outside.
//
// The engine performs one pop-and-expand unit per Step and never waits or
// times out on its own. Run supplies what a viewer needs around it:
//
//   - a cadence: one Step per Interval tick (Interval == 0 steps back to back);
//   - ceilings: MaxSteps and MaxRuntime, reported as ErrStepLimit and
//     ErrDeadline;
//   - frames: every step that produced a new snapshot is rendered into a
//     Frame and handed to OnFrame.
//
// Cancellation is cooperative. When ctx is done no further steps run and the
// last snapshot stays valid.
//
// Errors:
//
//   - ErrNilEngine       if Run is called without an engine.
//   - ErrOptionViolation if Interval, MaxSteps or MaxRuntime is negative.
//   - ErrStepLimit       if the engine did not terminate within MaxSteps.
//   - ErrDeadline        if the engine did not terminate within MaxRuntime.
package driver
