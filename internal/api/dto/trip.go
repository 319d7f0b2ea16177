package dto

import "time"

type TripRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`

	CarrierName         string `json:"carrier_name"`
	MainOfficeAddress   string `json:"main_office_address"`
	HomeTerminalAddress string `json:"home_terminal_address"`
	DriverName          string `json:"driver_name"`
	CoDriverName        string `json:"co_driver_name"`
	TruckTractor        string `json:"truck_tractor"`
	Trailer             string `json:"trailer"`
	DVLManifestNo       string `json:"dvl_manifest_no"`
	ShipperCommodity    string `json:"shipper_commodity"`

	// Timezone names the driver's home terminal zone (IANA name). Invalid
	// or missing values fall back to UTC.
	Timezone string `json:"timezone"`

	// StartTime overrides "now" as the trip start. Useful for planning
	// ahead and for reproducible requests.
	StartTime *time.Time `json:"start_time"`
}

type FuelStopResponse struct {
	Location      []float64 `json:"location"`
	DistanceMiles float64   `json:"distance"`
	Type          string    `json:"type"`
}

type MilestoneResponse struct {
	Name          string    `json:"name"`
	DistanceMiles float64   `json:"distance_miles"`
	Type          string    `json:"type"`
	ETA           time.Time `json:"eta"`
}

type RouteResponse struct {
	DistanceMiles float64             `json:"distance_miles"`
	Geometry      [][]float64         `json:"geometry"`
	FuelStops     []FuelStopResponse  `json:"fuel_stops"`
	StartCoords   []float64           `json:"start_coords"`
	PickupCoords  []float64           `json:"pickup_coords"`
	DropoffCoords []float64           `json:"dropoff_coords"`
	Milestones    []MilestoneResponse `json:"milestones"`
}

type TimelineEventResponse struct {
	Time        time.Time `json:"time"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Location    string    `json:"location,omitempty"`
}

type ComplianceResponse struct {
	Compliant       bool    `json:"compliant"`
	TotalOnDuty     float64 `json:"total_on_duty"`
	Required70Hours float64 `json:"required_70_hour_hours"`
	AvailableHours  float64 `json:"available_hours"`
	ExceedsBy       float64 `json:"exceeds_by"`
}

type GridIntervalResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type GridResponse struct {
	OffDuty          []GridIntervalResponse `json:"off_duty"`
	SleeperBerth     []GridIntervalResponse `json:"sleeper_berth"`
	Driving          []GridIntervalResponse `json:"driving"`
	OnDutyNotDriving []GridIntervalResponse `json:"on_duty_not_driving"`
}

type TotalsResponse struct {
	OffDuty          float64 `json:"off_duty"`
	SleeperBerth     float64 `json:"sleeper_berth"`
	Driving          float64 `json:"driving"`
	OnDutyNotDriving float64 `json:"on_duty_not_driving"`
}

type RecapResponse struct {
	OnDutyToday         float64 `json:"on_duty_today"`
	TotalLast7Days      float64 `json:"total_last_7_days"`
	AvailableTomorrow70 float64 `json:"available_tomorrow_70"`
	TotalLast5Days      float64 `json:"total_last_5_days"`
}

type LogSheetResponse struct {
	Date                string              `json:"date"`
	From                string              `json:"from"`
	To                  string              `json:"to"`
	TotalMilesDriving   float64             `json:"total_miles_driving"`
	TotalMileage        string              `json:"total_mileage"`
	CarrierName         string              `json:"carrier_name"`
	MainOfficeAddress   string              `json:"main_office_address"`
	HomeTerminalAddress string              `json:"home_terminal_address"`
	TruckTractorNumber  string              `json:"truck_tractor_number"`
	TrailerNumber       string              `json:"trailer_number"`
	DriverName          string              `json:"driver_name"`
	CoDriverName        string              `json:"co_driver_name"`
	DVLManifestNo       string              `json:"dvl_manifest_no"`
	ShipperCommodity    string              `json:"shipper_commodity"`
	Grid                GridResponse        `json:"grid"`
	Totals              TotalsResponse      `json:"totals"`
	Remarks             []string            `json:"remarks"`
	Recap               RecapResponse       `json:"recap"`
	IntermediateCities  []MilestoneResponse `json:"intermediate_cities"`
}

type TripSummaryResponse struct {
	TotalDrivingHours float64   `json:"total_driving_hours"`
	TotalOnDutyHours  float64   `json:"total_on_duty_hours"`
	EstimatedArrival  time.Time `json:"estimated_arrival"`
}

type TripResponse struct {
	Route      RouteResponse           `json:"route"`
	Timeline   []TimelineEventResponse `json:"timeline"`
	Compliance ComplianceResponse      `json:"compliance"`
	LogSheets  []LogSheetResponse      `json:"log_sheets"`
	Summary    TripSummaryResponse     `json:"summary"`
}
