package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"eld-trip-service/internal/domain"
)

func testCarrier() domain.CarrierInfo {
	return domain.CarrierInfo{
		Name:             "Acme Freight",
		DriverName:       "J. Doe",
		From:             "Chicago, IL",
		To:               "Denver, CO",
		CurrentCycleUsed: 12,
	}
}

func testVehicle() domain.VehicleInfo {
	return domain.VehicleInfo{TruckTractor: "T-100", Trailer: "TR-7"}
}

func TestBuildLogSheetsEmptyTimeline(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

	_, err := BuildLogSheets(nil, start, 100, testCarrier(), testVehicle(), nil)
	if err == nil {
		t.Fatal("expected error for empty timeline")
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestBuildLogSheetsPreservesDurations(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(0, start, 1500, 1.0, 1.0)

	sheets, err := BuildLogSheets(schedule.Timeline, start, 1500, testCarrier(), testVehicle(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheets) < 2 {
		t.Fatalf("expected a multi-day trip, got %d sheets", len(sheets))
	}

	for _, status := range domain.AllStatuses {
		wantTimeline := 0.0
		for _, ev := range schedule.Timeline {
			if ev.Status == status {
				wantTimeline += ev.DurationHours
			}
		}

		gotSheets := 0.0
		for _, sh := range sheets {
			gotSheets += sh.Totals.For(status)
		}

		// Per-day totals are rounded to 2 decimals; allow that much drift.
		if math.Abs(gotSheets-wantTimeline) > 0.05 {
			t.Fatalf("%v: sheet total %v != timeline total %v", status, gotSheets, wantTimeline)
		}
	}
}

func TestBuildLogSheetsGridBounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(0, start, 2200, 1.0, 1.0)

	sheets, err := BuildLogSheets(schedule.Timeline, start, 2200, testCarrier(), testVehicle(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for di, sh := range sheets {
		for _, status := range domain.AllStatuses {
			track := sh.Grid.Track(status)
			prevEnd := -1
			for _, iv := range track {
				if iv.StartMinute < 0 || iv.EndMinute > 1440 {
					t.Fatalf("day %d %v: interval %+v out of [0,1440]", di, status, iv)
				}
				if iv.EndMinute <= iv.StartMinute {
					t.Fatalf("day %d %v: empty or inverted interval %+v", di, status, iv)
				}
				if iv.StartMinute < prevEnd {
					t.Fatalf("day %d %v: interval %+v overlaps previous end %d", di, status, iv, prevEnd)
				}
				prevEnd = iv.EndMinute
			}
		}
	}
}

func TestBuildLogSheetsFillsEmptyDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

	// A hand-built timeline with a full-day gap between two events.
	timeline := []domain.TimelineEvent{
		{Start: start, Status: domain.StatusOnDutyNotDriving, Description: "Pickup", DurationHours: 2},
		{Start: start.AddDate(0, 0, 2), Status: domain.StatusOnDutyNotDriving, Description: "Dropoff", DurationHours: 1},
	}

	sheets, err := BuildLogSheets(timeline, start, 0, testCarrier(), testVehicle(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheets) != 3 {
		t.Fatalf("expected 3 sheets, got %d", len(sheets))
	}

	middle := sheets[1]
	if middle.Totals.OffDuty != 24 {
		t.Fatalf("gap day off-duty total = %v, want 24", middle.Totals.OffDuty)
	}
	if len(middle.Grid.OffDuty) != 1 || middle.Grid.OffDuty[0].StartMinute != 0 || middle.Grid.OffDuty[0].EndMinute != 1440 {
		t.Fatalf("gap day grid = %+v, want single full-day interval", middle.Grid.OffDuty)
	}
	if len(middle.Remarks) != 1 {
		t.Fatalf("gap day remarks = %v, want a single off-duty line", middle.Remarks)
	}
}

func TestBuildLogSheetsMilesFromDrivingTotals(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(0, start, 1500, 1.0, 1.0)

	sheets, err := BuildLogSheets(schedule.Timeline, start, 1500, testCarrier(), testVehicle(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0.0
	for _, sh := range sheets {
		sum += sh.TotalMilesDriving
	}
	if math.Abs(sum-1500) > 1.0 {
		t.Fatalf("per-day miles sum = %v, want ~1500", sum)
	}
}

func TestBuildLogSheetsRecap(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(12, start, 300, 1.0, 1.0)

	sheets, err := BuildLogSheets(schedule.Timeline, start, 300, testCarrier(), testVehicle(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}

	recap := sheets[0].Recap
	wantOnDuty := round2(sheets[0].Totals.Driving + sheets[0].Totals.OnDutyNotDriving)
	if recap.OnDutyToday != wantOnDuty {
		t.Fatalf("OnDutyToday = %v, want %v", recap.OnDutyToday, wantOnDuty)
	}
	if recap.TotalLast7Days != round2(12+wantOnDuty) {
		t.Fatalf("TotalLast7Days = %v, want %v", recap.TotalLast7Days, 12+wantOnDuty)
	}
	if recap.AvailableTomorrow70 != round2(70-(12+wantOnDuty)) {
		t.Fatalf("AvailableTomorrow70 = %v", recap.AvailableTomorrow70)
	}
}

// The 5-day recap figure intentionally mirrors the 7-day figure until a
// distinct 60-hour/7-day computation is introduced.
func TestRecapFiveDayMirrorsSevenDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(40, start, 800, 1.0, 1.0)

	sheets, err := BuildLogSheets(schedule.Timeline, start, 800, testCarrier(), testVehicle(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, sh := range sheets {
		if sh.Recap.TotalLast5Days != sh.Recap.TotalLast7Days {
			t.Fatalf("sheet %d: TotalLast5Days = %v, TotalLast7Days = %v; expected identical",
				i, sh.Recap.TotalLast5Days, sh.Recap.TotalLast7Days)
		}
	}
}

func TestBuildLogSheetsMilestoneSeam(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(0, start, 1500, 1.0, 1.0)

	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	milestones := []domain.TimedMilestone{
		{
			CityMilestone: domain.CityMilestone{Name: "Seam Town", DistanceMiles: 700, Type: domain.MilestoneIntermediate},
			ReachedAt:     midnight.Add(-20 * time.Minute),
		},
	}

	sheets, err := BuildLogSheets(schedule.Timeline, start, 1500, testCarrier(), testVehicle(), milestones)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheets) < 2 {
		t.Fatalf("expected a multi-day trip, got %d sheets", len(sheets))
	}

	names := func(ms []domain.TimedMilestone) []string {
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.Name)
		}
		return out
	}

	if !contains(names(sheets[0].IntermediateCities), "Seam Town") {
		t.Fatalf("day 0 missing seam milestone: %v", names(sheets[0].IntermediateCities))
	}
	// Within one hour of midnight, the milestone also lands on the next day.
	if !contains(names(sheets[1].IntermediateCities), "Seam Town") {
		t.Fatalf("day 1 missing seam milestone: %v", names(sheets[1].IntermediateCities))
	}
}

func TestBuildLogSheetsFromToChaining(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(0, start, 1500, 1.0, 1.0)

	milestones := []domain.TimedMilestone{
		{
			CityMilestone: domain.CityMilestone{Name: "Des Moines, IA", DistanceMiles: 330, Type: domain.MilestoneIntermediate},
			ReachedAt:     start.Add(7 * time.Hour),
		},
	}

	sheets, err := BuildLogSheets(schedule.Timeline, start, 1500, testCarrier(), testVehicle(), milestones)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheets) < 2 {
		t.Fatalf("expected a multi-day trip, got %d sheets", len(sheets))
	}

	if sheets[0].From != "Chicago, IL" {
		t.Fatalf("day 0 from = %q, want trip origin", sheets[0].From)
	}
	if sheets[0].To != "Des Moines, IA" {
		t.Fatalf("day 0 to = %q, want last milestone of the day", sheets[0].To)
	}
	if sheets[1].From != sheets[0].To {
		t.Fatalf("day 1 from = %q, want previous day's to %q", sheets[1].From, sheets[0].To)
	}
	if last := sheets[len(sheets)-1]; last.To != "Denver, CO" {
		t.Fatalf("final day to = %q, want trip destination", last.To)
	}
}

func TestBuildLogSheetsRemarksChronological(t *testing.T) {
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	schedule := ComputeTimeline(0, start, 600, 1.0, 1.0)
	timed := MapMilestones(schedule.Timeline, []domain.CityMilestone{
		{Name: "Joliet", DistanceMiles: 60, Type: domain.MilestoneIntermediate},
		{Name: "Iowa City", DistanceMiles: 330, Type: domain.MilestoneIntermediate},
	})

	sheets, err := BuildLogSheets(schedule.Timeline, start, 600, testCarrier(), testVehicle(), timed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}

	wantLines := len(schedule.Timeline) + len(timed)
	if len(sheets[0].Remarks) != wantLines {
		t.Fatalf("remarks = %d lines, want %d:\n%v", len(sheets[0].Remarks), wantLines, sheets[0].Remarks)
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
