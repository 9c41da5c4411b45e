package engine

import "time"

// Timing is the per-frame measurement, recomputed every frame
type Timing struct {
	Frame  time.Duration
	Update time.Duration
	Draw   time.Duration
	Commit time.Duration
	Period time.Duration
}

// FrameMicros returns the whole frame time in microseconds
func (t Timing) FrameMicros() int64 { return t.Frame.Microseconds() }

// UpdateMicros returns the update time in microseconds
func (t Timing) UpdateMicros() int64 { return t.Update.Microseconds() }

// DrawMicros returns the draw time in microseconds
func (t Timing) DrawMicros() int64 { return t.Draw.Microseconds() }

// CommitMicros returns the commit time in microseconds
func (t Timing) CommitMicros() int64 { return t.Commit.Microseconds() }

// PeriodMicros returns the frame budget (1e6/fps) in microseconds
func (t Timing) PeriodMicros() int64 { return t.Period.Microseconds() }

// BudgetPercent is the share of the period the last frame used
func (t Timing) BudgetPercent() float64 {
	if t.Period <= 0 {
		return 0
	}
	return float64(t.Frame) * 100 / float64(t.Period)
}
