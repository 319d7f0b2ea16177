package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eld-trip-service/internal/adapters/route"
	"eld-trip-service/internal/domain"
)

func TestPlanTrip(t *testing.T) {
	provider := &route.MockRouteProvider{
		Coords: map[string]domain.Coordinates{
			"Chicago, IL":    {Lon: -87.6298, Lat: 41.8781},
			"Des Moines, IA": {Lon: -93.6250, Lat: 41.5868},
			"Denver, CO":     {Lon: -104.9903, Lat: 39.7392},
		},
		Route: domain.RouteInfo{
			DistanceMiles: 600,
			Milestones: []domain.CityMilestone{
				{Name: "Chicago, IL", DistanceMiles: 0, Type: domain.MilestoneStart},
				{Name: "Des Moines, IA", DistanceMiles: 330, Type: domain.MilestonePickup},
				{Name: "Denver, CO", DistanceMiles: 600, Type: domain.MilestoneDropoff},
			},
		},
	}

	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	req := PlanTripRequest{
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "Des Moines, IA",
		DropoffLocation: "Denver, CO",
		CycleHoursUsed:  10,
		Start:           start,
		Carrier: domain.CarrierInfo{
			From:             "Chicago, IL",
			To:               "Denver, CO",
			CurrentCycleUsed: 10,
		},
	}

	plan, err := PlanTrip(context.Background(), req, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Route.DistanceMiles != 600 {
		t.Fatalf("route distance = %v, want 600", plan.Route.DistanceMiles)
	}
	if len(plan.Timeline) == 0 {
		t.Fatal("expected a timeline")
	}
	if len(plan.Milestones) != 3 {
		t.Fatalf("expected 3 timed milestones, got %d", len(plan.Milestones))
	}
	if len(plan.LogSheets) == 0 {
		t.Fatal("expected log sheets")
	}

	last := plan.Timeline[len(plan.Timeline)-1]
	if !plan.EstimatedArrival.Equal(last.End()) {
		t.Fatalf("EstimatedArrival = %v, want %v", plan.EstimatedArrival, last.End())
	}

	// 600 miles = 10h driving + 2h pickup/dropoff; 10 used + 12 fits in 70.
	if !plan.Compliance.Compliant {
		t.Fatalf("expected compliant trip, got %+v", plan.Compliance)
	}

	if plan.Route.StartCoords != provider.Coords["Chicago, IL"] {
		t.Fatalf("start coords = %v", plan.Route.StartCoords)
	}
	if plan.Route.DropoffCoords != provider.Coords["Denver, CO"] {
		t.Fatalf("dropoff coords = %v", plan.Route.DropoffCoords)
	}
}

func TestPlanTripValidation(t *testing.T) {
	provider := &route.MockRouteProvider{}
	start := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

	_, err := PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "  ",
		PickupLocation:  "B",
		DropoffLocation: "C",
		Start:           start,
	}, provider)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}

	_, err = PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "A",
		PickupLocation:  "B",
		DropoffLocation: "C",
		Start:           start,
	}, provider)
	if err == nil {
		t.Fatal("expected geocode failure for unknown address")
	}
}

func TestPlanTripRouteFailure(t *testing.T) {
	provider := &route.MockRouteProvider{
		Coords: map[string]domain.Coordinates{
			"A": {}, "B": {}, "C": {},
		},
		Err: errors.New("routing backend down"),
	}

	_, err := PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "A",
		PickupLocation:  "B",
		DropoffLocation: "C",
		Start:           time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
	}, provider)
	if err == nil {
		t.Fatal("expected route failure to propagate")
	}
}
