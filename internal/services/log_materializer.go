package services

import (
	"fmt"
	"math"
	"slices"
	"time"

	"eld-trip-service/internal/domain"
)

const minutesPerDay = 24 * 60

// LogSheetBuilder materializes a trip timeline into day-partitioned driver
// log sheets. The zero value uses the heuristic remark annotator; swapping
// Annotator changes only remark text, never grid or totals arithmetic.
type LogSheetBuilder struct {
	Annotator Annotator
}

// BuildLogSheets materializes log sheets with the default heuristic annotator.
func BuildLogSheets(
	timeline []domain.TimelineEvent,
	start time.Time,
	totalMiles float64,
	carrier domain.CarrierInfo,
	vehicle domain.VehicleInfo,
	milestones []domain.TimedMilestone,
) ([]domain.LogSheet, error) {
	b := LogSheetBuilder{}
	return b.Build(timeline, start, totalMiles, carrier, vehicle, milestones)
}

// Build emits one log sheet per calendar day covered by the timeline, from
// the date of the first event through the date of the last event's end.
// Events are clipped to day windows without dropping or double-counting
// duration; a day with no events gets a single 24-hour off-duty filler.
func (b *LogSheetBuilder) Build(
	timeline []domain.TimelineEvent,
	start time.Time,
	totalMiles float64,
	carrier domain.CarrierInfo,
	vehicle domain.VehicleInfo,
	milestones []domain.TimedMilestone,
) ([]domain.LogSheet, error) {
	if len(timeline) == 0 {
		return nil, fmt.Errorf("build log sheets: timeline is empty: %w", domain.ErrInvalidInput)
	}

	annotator := b.Annotator
	if annotator == nil {
		annotator = HeuristicAnnotator{Destination: carrier.To}
	}

	firstStart := timeline[0].Start
	end := timeline[0].End()
	for _, ev := range timeline {
		if ev.Start.Before(firstStart) {
			firstStart = ev.Start
		}
		if ev.End().After(end) {
			end = ev.End()
		}
	}

	dayStart := midnightOf(firstStart)

	sheets := make([]domain.LogSheet, 0, 4)
	sawDriving := false
	prevTo := ""

	for dayStart.Before(end) {
		dayEnd := dayStart.Add(minutesPerDay * time.Minute)

		dayEvents := clipToDay(timeline, dayStart, dayEnd)
		if len(dayEvents) == 0 {
			dayEvents = []domain.TimelineEvent{{
				Start:         dayStart,
				Status:        domain.StatusOffDuty,
				Description:   "Off duty",
				DurationHours: 24,
			}}
		}

		dayMilestones := milestonesForDay(milestones, dayStart, dayEnd)

		totals := dayTotals(dayEvents)
		final := !dayEnd.Before(end)

		from := carrier.From
		if len(sheets) > 0 {
			from = prevTo
		}

		to := carrier.To
		if !final && len(dayMilestones) > 0 {
			to = dayMilestones[len(dayMilestones)-1].Name
		}
		prevTo = to

		if totals.Driving > 0 {
			sawDriving = true
		}

		sheets = append(sheets, domain.LogSheet{
			Date:               dayStart.Format("01/02/2006"),
			From:               from,
			To:                 to,
			TotalMilesDriving:  round1(totals.Driving * AverageSpeedMPH),
			TotalMileage:       vehicle.TotalMileage,
			CarrierName:        carrier.Name,
			MainOfficeAddress:  carrier.MainOfficeAddress,
			HomeTerminalAddr:   carrier.HomeTerminalAddress,
			TruckTractorNumber: vehicle.TruckTractor,
			TrailerNumber:      vehicle.Trailer,
			DriverName:         carrier.DriverName,
			CoDriverName:       carrier.CoDriverName,
			DVLManifestNo:      carrier.DVLManifestNo,
			ShipperCommodity:   carrier.ShipperCommodity,
			Grid:               buildGrid(dayEvents, dayStart),
			Totals:             roundTotals(totals),
			Remarks:            buildRemarks(dayEvents, dayMilestones, annotator),
			Recap:              buildRecap(totals, carrier.CurrentCycleUsed),
			IntermediateCities: dayMilestones,
		})

		dayStart = dayEnd
	}

	// Without per-day driving recomputation (a timeline that never drives),
	// the trip's input distance belongs to the first day.
	if !sawDriving && totalMiles > 0 && len(sheets) > 0 {
		sheets[0].TotalMilesDriving = round1(totalMiles)
	}

	return sheets, nil
}

// midnightOf truncates t to the start of its calendar day in t's own location.
func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// clipToDay returns copies of every event overlapping [dayStart, dayEnd),
// truncated to the window, sorted by start. Events outside the window are
// skipped; the originals are never mutated.
func clipToDay(timeline []domain.TimelineEvent, dayStart, dayEnd time.Time) []domain.TimelineEvent {
	out := make([]domain.TimelineEvent, 0, len(timeline))
	for _, ev := range timeline {
		s := ev.Start
		e := ev.End()

		if !s.Before(dayEnd) || !e.After(dayStart) {
			continue
		}
		if s.Before(dayStart) {
			s = dayStart
		}
		if e.After(dayEnd) {
			e = dayEnd
		}

		clipped := ev
		clipped.Start = s
		clipped.DurationHours = e.Sub(s).Hours()
		out = append(out, clipped)
	}

	slices.SortStableFunc(out, func(a, b domain.TimelineEvent) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

// buildGrid converts a day's clipped events into minute intervals per status
// track. A running cursor clamps each interval's start to the previous
// interval's end, so tracks stay monotonic even if upstream events overlap.
func buildGrid(dayEvents []domain.TimelineEvent, dayStart time.Time) domain.Grid {
	var grid domain.Grid
	cursor := 0

	for _, ev := range dayEvents {
		startMin := int(ev.Start.Sub(dayStart).Minutes())
		endMin := startMin + int(math.Round(ev.DurationHours*60))

		if startMin < cursor {
			startMin = cursor
		}
		if endMin > minutesPerDay {
			endMin = minutesPerDay
		}
		if endMin <= startMin {
			continue
		}

		grid.Append(ev.Status, domain.GridInterval{StartMinute: startMin, EndMinute: endMin})
		cursor = endMin
	}

	return grid
}

func dayTotals(dayEvents []domain.TimelineEvent) domain.Totals {
	var totals domain.Totals
	for _, ev := range dayEvents {
		totals.Add(ev.Status, ev.DurationHours)
	}
	return totals
}

func roundTotals(t domain.Totals) domain.Totals {
	return domain.Totals{
		OffDuty:          round2(t.OffDuty),
		SleeperBerth:     round2(t.SleeperBerth),
		Driving:          round2(t.Driving),
		OnDutyNotDriving: round2(t.OnDutyNotDriving),
	}
}

// milestonesForDay selects milestones reached within [dayStart, dayEnd).
// A milestone within one hour of midnight is also admitted into the adjacent
// day, absorbing clock rounding at day seams.
func milestonesForDay(milestones []domain.TimedMilestone, dayStart, dayEnd time.Time) []domain.TimedMilestone {
	const seam = time.Hour

	out := make([]domain.TimedMilestone, 0, len(milestones))
	for _, m := range milestones {
		t := m.ReachedAt
		inDay := !t.Before(dayStart) && t.Before(dayEnd)
		beforeSeam := t.Before(dayStart) && dayStart.Sub(t) <= seam
		afterSeam := !t.Before(dayEnd) && t.Sub(dayEnd) < seam

		if inDay || beforeSeam || afterSeam {
			out = append(out, m)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.TimedMilestone) int {
		return a.ReachedAt.Compare(b.ReachedAt)
	})
	return out
}

func buildRecap(totals domain.Totals, cycleHoursUsed float64) domain.Recap {
	onDutyToday := totals.Driving + totals.OnDutyNotDriving
	total7 := cycleHoursUsed + onDutyToday

	available := MaxCycleHours - total7
	if available < 0 {
		available = 0
	}

	return domain.Recap{
		OnDutyToday:         round2(onDutyToday),
		TotalLast7Days:      round2(total7),
		AvailableTomorrow70: round2(available),
		TotalLast5Days:      round2(total7),
	}
}

// round2 rounds half away from zero at 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds half away from zero at 1 decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
