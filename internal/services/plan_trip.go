package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
)

// PlanTripRequest carries the validated inputs for one trip computation.
// Start is caller-resolved (already in the desired timezone); the planner
// never reads the wall clock.
type PlanTripRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleHoursUsed  float64
	Start           time.Time
	PickupHours     float64
	DropoffHours    float64
	Carrier         domain.CarrierInfo
	Vehicle         domain.VehicleInfo
}

// TripPlan is the assembled output for one trip: the resolved route, the
// scheduled timeline with its compliance verdict, timed milestones, and the
// day-partitioned log sheets.
type TripPlan struct {
	Route            domain.RouteInfo
	Timeline         []domain.TimelineEvent
	Compliance       domain.ComplianceResult
	Milestones       []domain.TimedMilestone
	LogSheets        []domain.LogSheet
	TotalDriving     float64
	TotalOnDuty      float64
	EstimatedArrival time.Time
}

// PlanTrip resolves the route through the provider, schedules the HOS
// timeline, times the route milestones, and materializes the log sheets.
// Only the provider performs I/O; everything downstream of it is a pure
// function of the resolved route and the request values.
func PlanTrip(ctx context.Context, req PlanTripRequest, provider ports.RouteProvider) (*TripPlan, error) {
	if provider == nil {
		return nil, errors.New("plan trip: route provider must be non-nil")
	}

	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if current == "" || pickup == "" || dropoff == "" {
		return nil, fmt.Errorf("plan trip: current, pickup, and dropoff locations must be non-empty: %w", domain.ErrInvalidInput)
	}

	startCoords, err := provider.Geocode(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode current location %q: %w", current, err)
	}
	pickupCoords, err := provider.Geocode(ctx, pickup)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode pickup location %q: %w", pickup, err)
	}
	dropoffCoords, err := provider.Geocode(ctx, dropoff)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode dropoff location %q: %w", dropoff, err)
	}

	route, err := provider.GetRoute(ctx, startCoords, []domain.Coordinates{pickupCoords}, dropoffCoords)
	if err != nil {
		return nil, fmt.Errorf("plan trip: get route: %w", err)
	}
	route.StartCoords = startCoords
	route.PickupCoords = pickupCoords
	route.DropoffCoords = dropoffCoords

	pickupHours := req.PickupHours
	if pickupHours <= 0 {
		pickupHours = DefaultStopHours
	}
	dropoffHours := req.DropoffHours
	if dropoffHours <= 0 {
		dropoffHours = DefaultStopHours
	}

	schedule := ComputeTimeline(req.CycleHoursUsed, req.Start, route.DistanceMiles, pickupHours, dropoffHours)
	timed := MapMilestones(schedule.Timeline, route.Milestones)

	sheets, err := BuildLogSheets(schedule.Timeline, req.Start, route.DistanceMiles, req.Carrier, req.Vehicle, timed)
	if err != nil {
		return nil, fmt.Errorf("plan trip: build log sheets: %w", err)
	}

	last := schedule.Timeline[len(schedule.Timeline)-1]

	return &TripPlan{
		Route:            route,
		Timeline:         schedule.Timeline,
		Compliance:       schedule.Compliance,
		Milestones:       timed,
		LogSheets:        sheets,
		TotalDriving:     schedule.TotalDrivingHours,
		TotalOnDuty:      schedule.TotalOnDutyHours,
		EstimatedArrival: last.End(),
	}, nil
}
