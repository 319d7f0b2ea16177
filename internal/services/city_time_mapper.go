package services

import (
	"slices"
	"time"

	"eld-trip-service/internal/domain"
)

// MapMilestones computes the wall-clock time each route milestone is reached,
// by walking the timeline's Driving events and converting covered distance at
// the fixed average speed.
//
// Every milestone receives some reached time: milestones that fall between
// segments (boundary rounding) or beyond the last Driving event resolve via
// proportional interpolation over the full driving span, and as a last resort
// take the end of the last Driving event. The function never fails.
func MapMilestones(timeline []domain.TimelineEvent, milestones []domain.CityMilestone) []domain.TimedMilestone {
	if len(timeline) == 0 || len(milestones) == 0 {
		return []domain.TimedMilestone{}
	}

	sorted := make([]domain.CityMilestone, len(milestones))
	copy(sorted, milestones)
	slices.SortStableFunc(sorted, func(a, b domain.CityMilestone) int {
		if a.DistanceMiles < b.DistanceMiles {
			return -1
		}
		if a.DistanceMiles > b.DistanceMiles {
			return 1
		}
		return 0
	})

	driving := make([]domain.TimelineEvent, 0, len(timeline))
	for _, ev := range timeline {
		if ev.Status == domain.StatusDriving {
			driving = append(driving, ev)
		}
	}

	tripStart := timeline[0].Start
	pickupDistance := pickupDistanceMiles(sorted)

	out := make([]domain.TimedMilestone, 0, len(sorted))
	for _, m := range sorted {
		out = append(out, domain.TimedMilestone{
			CityMilestone: m,
			ReachedAt:     reachedTime(m, tripStart, pickupDistance, driving, timeline),
		})
	}
	return out
}

// pickupDistanceMiles finds the cumulative distance of the pickup milestone,
// or zero when the route carries none.
func pickupDistanceMiles(milestones []domain.CityMilestone) float64 {
	for _, m := range milestones {
		if m.Type == domain.MilestonePickup {
			return m.DistanceMiles
		}
	}
	return 0
}

func reachedTime(
	m domain.CityMilestone,
	tripStart time.Time,
	pickupDistance float64,
	driving []domain.TimelineEvent,
	timeline []domain.TimelineEvent,
) time.Time {
	switch m.Type {
	case domain.MilestoneStart:
		return tripStart
	case domain.MilestonePickup:
		if len(driving) > 0 {
			return driving[0].Start
		}
		return tripStart
	}

	// Milestones before the pickup are reached while deadheading to it:
	// elapsed time scales linearly from trip start at the average speed.
	if m.DistanceMiles < pickupDistance {
		return tripStart.Add(domain.HoursToDuration(m.DistanceMiles / AverageSpeedMPH))
	}

	if len(driving) == 0 {
		return timeline[len(timeline)-1].Start
	}

	fromPickup := m.DistanceMiles - pickupDistance

	// Locate the Driving event whose cumulative-distance interval contains
	// the milestone, then offset into it at the average speed.
	distanceBefore := 0.0
	for _, ev := range driving {
		segment := ev.DurationHours * AverageSpeedMPH
		if fromPickup > distanceBefore && fromPickup <= distanceBefore+segment {
			t := ev.Start.Add(domain.HoursToDuration((fromPickup - distanceBefore) / AverageSpeedMPH))
			return clampTime(t, ev.Start, ev.End())
		}
		distanceBefore += segment
	}

	// Boundary rounding or a milestone beyond the last segment: interpolate
	// proportionally across the whole driving span and clamp into the nearest
	// Driving event's bounds.
	totalDriven := distanceBefore
	if totalDriven > 0 {
		fraction := fromPickup / totalDriven
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}

		spanStart := driving[0].Start
		span := driving[len(driving)-1].End().Sub(spanStart)
		target := spanStart.Add(time.Duration(fraction * float64(span)))

		if ev, ok := nearestDrivingEvent(driving, target); ok {
			return clampTime(target, ev.Start, ev.End())
		}
	}

	return driving[len(driving)-1].End()
}

// nearestDrivingEvent picks the Driving event containing t, or failing that
// the one whose bounds lie closest to t.
func nearestDrivingEvent(driving []domain.TimelineEvent, t time.Time) (domain.TimelineEvent, bool) {
	if len(driving) == 0 {
		return domain.TimelineEvent{}, false
	}

	best := driving[0]
	bestGap := time.Duration(1<<63 - 1)
	for _, ev := range driving {
		if !t.Before(ev.Start) && !t.After(ev.End()) {
			return ev, true
		}

		gap := ev.Start.Sub(t)
		if gap < 0 {
			gap = t.Sub(ev.End())
		}
		if gap < bestGap {
			bestGap = gap
			best = ev
		}
	}
	return best, true
}

func clampTime(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
