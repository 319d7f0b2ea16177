package services

import (
	"eld-trip-service/internal/domain"
	"time"
)

// Regulatory constants for property-carrying drivers on the 70-hour/8-day
// cycle. The scheduler is fixed to these limits.
const (
	MaxCycleHours     = 70.0
	MaxWindowHours    = 14.0
	MaxDrivingHours   = 11.0
	RestHours         = 10.0
	BreakHours        = 0.5
	BreakAfterDriving = 8.0
	AverageSpeedMPH   = 60.0
	HoursEpsilon      = 0.01
	DefaultStopHours  = 1.0
)

// TripSchedule is the scheduler's full answer for one trip.
type TripSchedule struct {
	Timeline          []domain.TimelineEvent
	TotalDrivingHours float64
	TotalOnDutyHours  float64
	Compliance        domain.ComplianceResult
}

// ComputeTimeline produces the minimal sequence of duty-status events needed
// to drive totalDistanceMiles starting at start, honoring the 11-hour driving
// cap, the 14-hour on-duty window, the 30-minute break after 8 cumulative
// driving hours, and the 10-hour rest that resets the window.
//
// The result is a pure function of its arguments. A zero or negative distance
// yields a pickup and dropoff only. The compliance verdict is informational;
// non-compliant trips are still scheduled in full.
func ComputeTimeline(
	cycleHoursUsed float64,
	start time.Time,
	totalDistanceMiles float64,
	pickupHours float64,
	dropoffHours float64,
) TripSchedule {
	totalDrivingHours := 0.0
	if totalDistanceMiles > 0 {
		totalDrivingHours = totalDistanceMiles / AverageSpeedMPH
	}

	timeline := make([]domain.TimelineEvent, 0, 8)
	timeline = append(timeline, domain.TimelineEvent{
		Start:         start,
		Status:        domain.StatusOnDutyNotDriving,
		Description:   "Pickup",
		DurationHours: pickupHours,
	})
	current := start.Add(domain.HoursToDuration(pickupHours))

	sim := newDriveState(current, totalDrivingHours)
	timeline = append(timeline, sim.run()...)

	current = timeline[len(timeline)-1].End()

	timeline = append(timeline, domain.TimelineEvent{
		Start:         current,
		Status:        domain.StatusOnDutyNotDriving,
		Description:   "Dropoff",
		DurationHours: dropoffHours,
	})

	totalOnDuty := totalOnDutyHours(timeline)
	required := cycleHoursUsed + totalOnDuty

	exceeds := required - MaxCycleHours
	if exceeds < 0 {
		exceeds = 0
	}

	return TripSchedule{
		Timeline:          timeline,
		TotalDrivingHours: totalDrivingHours,
		TotalOnDutyHours:  totalOnDuty,
		Compliance: domain.ComplianceResult{
			Compliant:          required <= MaxCycleHours,
			TotalOnDutyHours:   totalOnDuty,
			RequiredCycleHours: required,
			AvailableHours:     MaxCycleHours - cycleHoursUsed,
			ExceedsBy:          exceeds,
		},
	}
}

func totalOnDutyHours(timeline []domain.TimelineEvent) float64 {
	total := 0.0
	for _, ev := range timeline {
		if ev.Status.OnDuty() {
			total += ev.DurationHours
		}
	}
	return total
}

// driveState is the running state of the driving simulation: the clock, the
// distance still to cover, and the three regulatory counters. Each transition
// (drive, takeBreak, rest) emits one event and advances the clock.
type driveState struct {
	now         time.Time
	remaining   float64 // driving hours left for the trip
	windowStart time.Time
	inWindow    float64 // driving hours since the window opened
	sinceBreak  float64 // driving hours since the last 30-minute break
	events      []domain.TimelineEvent
}

func newDriveState(start time.Time, drivingHours float64) *driveState {
	return &driveState{
		now:         start,
		remaining:   drivingHours,
		windowStart: start,
	}
}

// run advances the simulation until no driving remains. Residues below 1e-9h
// are treated as zero so floating accumulation cannot spin the loop.
func (s *driveState) run() []domain.TimelineEvent {
	for s.remaining > 1e-9 {
		if s.needsRest() {
			s.rest()
			continue
		}

		chunk := s.nextChunk()
		if chunk <= 0 {
			break // no admissible driving and no rest due; defensive exit
		}

		if s.sinceBreak+chunk >= BreakAfterDriving {
			toBreak := BreakAfterDriving - s.sinceBreak
			if toBreak > HoursEpsilon {
				s.drive(toBreak)
			}
			s.takeBreak()
			continue
		}

		s.drive(chunk)
	}
	return s.events
}

func (s *driveState) windowRemaining() float64 {
	elapsed := s.now.Sub(s.windowStart).Hours()
	return MaxWindowHours - elapsed
}

// needsRest reports whether a 10-hour rest is the only legal next move:
// the 14-hour window is exhausted, or no 11-hour driving allowance remains.
func (s *driveState) needsRest() bool {
	return s.windowRemaining() <= HoursEpsilon ||
		MaxDrivingHours-s.inWindow <= HoursEpsilon
}

// nextChunk is the largest driving span admissible under every limit at once:
// remaining window time, remaining 11-hour allowance, remaining trip driving,
// and the hours until the next mandatory break.
func (s *driveState) nextChunk() float64 {
	chunk := s.windowRemaining()
	if a := MaxDrivingHours - s.inWindow; a < chunk {
		chunk = a
	}
	if s.remaining < chunk {
		chunk = s.remaining
	}
	if untilBreak := BreakAfterDriving - s.sinceBreak; untilBreak > 0 && untilBreak < chunk {
		chunk = untilBreak
	}
	return chunk
}

func (s *driveState) drive(hours float64) {
	s.events = append(s.events, domain.TimelineEvent{
		Start:         s.now,
		Status:        domain.StatusDriving,
		Description:   "Driving",
		DurationHours: hours,
	})
	s.now = s.now.Add(domain.HoursToDuration(hours))
	s.remaining -= hours
	s.inWindow += hours
	s.sinceBreak += hours
}

func (s *driveState) takeBreak() {
	s.events = append(s.events, domain.TimelineEvent{
		Start:         s.now,
		Status:        domain.StatusOffDuty,
		Description:   "30-minute break",
		DurationHours: BreakHours,
	})
	s.now = s.now.Add(domain.HoursToDuration(BreakHours))
	s.sinceBreak = 0
}

// rest inserts a 10-hour sleeper-berth rest. This is the only transition that
// reopens the 14-hour window.
func (s *driveState) rest() {
	s.events = append(s.events, domain.TimelineEvent{
		Start:         s.now,
		Status:        domain.StatusSleeperBerth,
		Description:   "10-hour rest break (sleeper berth)",
		DurationHours: RestHours,
	})
	s.now = s.now.Add(domain.HoursToDuration(RestHours))
	s.windowStart = s.now
	s.inWindow = 0
	s.sinceBreak = 0
}
