package domain

// GridInterval is a half-open minute span [StartMinute, EndMinute) relative
// to the owning log sheet's day start. Both ends lie within [0, 1440].
type GridInterval struct {
	StartMinute int
	EndMinute   int
}

// Grid holds one ordered interval track per duty status for a single day.
// Intervals on the same track never overlap.
type Grid struct {
	OffDuty          []GridInterval
	SleeperBerth     []GridInterval
	Driving          []GridInterval
	OnDutyNotDriving []GridInterval
}

// Append adds an interval to the track for the given status.
func (g *Grid) Append(status DutyStatus, iv GridInterval) {
	switch status {
	case StatusOffDuty:
		g.OffDuty = append(g.OffDuty, iv)
	case StatusSleeperBerth:
		g.SleeperBerth = append(g.SleeperBerth, iv)
	case StatusDriving:
		g.Driving = append(g.Driving, iv)
	case StatusOnDutyNotDriving:
		g.OnDutyNotDriving = append(g.OnDutyNotDriving, iv)
	}
}

// Track returns the interval track for the given status.
func (g *Grid) Track(status DutyStatus) []GridInterval {
	switch status {
	case StatusOffDuty:
		return g.OffDuty
	case StatusSleeperBerth:
		return g.SleeperBerth
	case StatusDriving:
		return g.Driving
	case StatusOnDutyNotDriving:
		return g.OnDutyNotDriving
	}
	return nil
}

// Totals holds the per-status hour sums for one day, rounded to 2 decimals.
type Totals struct {
	OffDuty          float64
	SleeperBerth     float64
	Driving          float64
	OnDutyNotDriving float64
}

// Add accumulates hours onto the bucket for the given status.
func (t *Totals) Add(status DutyStatus, hours float64) {
	switch status {
	case StatusOffDuty:
		t.OffDuty += hours
	case StatusSleeperBerth:
		t.SleeperBerth += hours
	case StatusDriving:
		t.Driving += hours
	case StatusOnDutyNotDriving:
		t.OnDutyNotDriving += hours
	}
}

// For returns the hour total for the given status.
func (t Totals) For(status DutyStatus) float64 {
	switch status {
	case StatusOffDuty:
		return t.OffDuty
	case StatusSleeperBerth:
		return t.SleeperBerth
	case StatusDriving:
		return t.Driving
	case StatusOnDutyNotDriving:
		return t.OnDutyNotDriving
	}
	return 0
}

// Recap is the daily hours recap printed at the bottom of a log sheet.
//
// TotalLast5Days mirrors TotalLast7Days for now; the 60-hour/7-day variant of
// the recap has no distinct computation yet.
type Recap struct {
	OnDutyToday         float64
	TotalLast7Days      float64
	AvailableTomorrow70 float64
	TotalLast5Days      float64
}

// LogSheet is one day's driver log: identity header, the duty-status grid,
// per-status totals, the recap, and chronological remarks.
type LogSheet struct {
	Date               string
	From               string
	To                 string
	TotalMilesDriving  float64
	TotalMileage       string
	CarrierName        string
	MainOfficeAddress  string
	HomeTerminalAddr   string
	TruckTractorNumber string
	TrailerNumber      string
	DriverName         string
	CoDriverName       string
	DVLManifestNo      string
	ShipperCommodity   string
	Grid               Grid
	Totals             Totals
	Remarks            []string
	Recap              Recap
	IntermediateCities []TimedMilestone
}
