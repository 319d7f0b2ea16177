package services

import (
	"slices"
	"strings"
	"time"

	"eld-trip-service/internal/domain"
)

// Annotator supplies best-effort location context for remark lines. It is a
// presentation concern: implementations may guess, simplify, or return empty
// strings without affecting grid, totals, or compliance output.
type Annotator interface {
	// EventContext returns the location suffix for a duty-status event,
	// given the milestones reached on the same day.
	EventContext(ev domain.TimelineEvent, dayMilestones []domain.TimedMilestone) string
	// MilestoneContext returns the suffix for a milestone's own remark line.
	MilestoneContext(m domain.TimedMilestone) string
}

// buildRemarks merges a day's duty events and reached milestones into one
// chronological remark list. Every event and every milestone produces exactly
// one line.
func buildRemarks(
	dayEvents []domain.TimelineEvent,
	dayMilestones []domain.TimedMilestone,
	annotator Annotator,
) []string {
	type entry struct {
		at   time.Time
		line string
	}

	entries := make([]entry, 0, len(dayEvents)+len(dayMilestones))

	for _, ev := range dayEvents {
		line := ev.Start.Format("03:04 PM") + " - " + ev.Description
		if suffix := annotator.EventContext(ev, dayMilestones); suffix != "" {
			line += " - " + suffix
		}
		entries = append(entries, entry{at: ev.Start, line: line})
	}

	for _, m := range dayMilestones {
		line := m.ReachedAt.Format("03:04 PM") + " - " + m.Name
		if suffix := annotator.MilestoneContext(m); suffix != "" {
			line += " - " + suffix
		}
		entries = append(entries, entry{at: m.ReachedAt, line: line})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return a.at.Compare(b.at)
	})

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.line)
	}
	return out
}

// HeuristicAnnotator guesses remark context from nearby milestones and the
// recorded destination string. Pickup and dropoff events accept a milestone
// within one hour; driving events within two.
type HeuristicAnnotator struct {
	Destination string
}

func (a HeuristicAnnotator) EventContext(ev domain.TimelineEvent, dayMilestones []domain.TimedMilestone) string {
	if ev.Location != "" {
		return ev.Location
	}

	tolerance := 2 * time.Hour
	if ev.Status == domain.StatusOnDutyNotDriving {
		tolerance = time.Hour
	}

	if name := nearestMilestoneName(ev.Start, dayMilestones, tolerance); name != "" {
		return name
	}

	// First comma-delimited segment of the destination reads as a city name.
	if seg, _, _ := strings.Cut(a.Destination, ","); strings.TrimSpace(seg) != "" {
		return strings.TrimSpace(seg)
	}

	switch {
	case ev.Status == domain.StatusDriving:
		return "route"
	case strings.EqualFold(ev.Description, "Dropoff"):
		return "dropoff area"
	case strings.EqualFold(ev.Description, "Pickup"):
		return "pickup area"
	}
	return ""
}

func (a HeuristicAnnotator) MilestoneContext(m domain.TimedMilestone) string {
	switch m.Type {
	case domain.MilestoneStart:
		return "start area"
	case domain.MilestonePickup:
		return "pickup area"
	case domain.MilestoneDropoff:
		return "dropoff area"
	}

	name := strings.ToLower(m.Name)
	switch {
	case strings.Contains(name, "county"):
		return "county"
	case strings.Contains(name, "township"):
		return "township"
	case strings.Contains(name, "city"):
		return "city"
	}
	return "area"
}

// nearestMilestoneName returns the name of the milestone closest in time to
// t, if any lies within the tolerance.
func nearestMilestoneName(t time.Time, milestones []domain.TimedMilestone, tolerance time.Duration) string {
	best := ""
	bestGap := tolerance

	for _, m := range milestones {
		gap := m.ReachedAt.Sub(t)
		if gap < 0 {
			gap = -gap
		}
		if gap <= bestGap {
			best = m.Name
			bestGap = gap
		}
	}
	return best
}
