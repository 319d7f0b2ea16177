package domain

import "time"

// TimelineEvent is one duty-status span on the trip timeline.
// Events are immutable once produced by the scheduler; day-local views are
// derived as clipped copies, never by mutating the original sequence.
type TimelineEvent struct {
	Start         time.Time
	Status        DutyStatus
	Description   string
	DurationHours float64
	Location      string // empty when no place name is known
}

// End returns the instant the event finishes.
func (e TimelineEvent) End() time.Time {
	return e.Start.Add(HoursToDuration(e.DurationHours))
}

// ComplianceResult reports the 70-hour/8-day cycle check for a planned trip.
// It is informational: a non-compliant trip is still fully scheduled.
type ComplianceResult struct {
	Compliant          bool
	TotalOnDutyHours   float64
	RequiredCycleHours float64
	AvailableHours     float64
	ExceedsBy          float64
}

// HoursToDuration converts fractional hours to a time.Duration.
func HoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
