package handlers

import (
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"eld-trip-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
)

type TripHandler struct {
	Provider ports.RouteProvider
}

// Calculate plans a full trip: route lookup, duty-status timeline,
// milestone arrival times, and day-partitioned log sheets.
func (h *TripHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.CurrentLocation) == "" ||
		strings.TrimSpace(req.PickupLocation) == "" ||
		strings.TrimSpace(req.DropoffLocation) == "" {
		writeError(w, r, http.StatusBadRequest, "current_location, pickup_location, and dropoff_location are required")
		return
	}

	if req.CurrentCycleUsed < 0 || req.CurrentCycleUsed > services.MaxCycleHours {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used must be between 0 and 70")
		return
	}

	// An unknown zone silently falls back to UTC rather than failing the
	// whole request over a cosmetic field.
	tz, err := time.LoadLocation(req.Timezone)
	if req.Timezone == "" || err != nil {
		tz = time.UTC
	}

	start := time.Now().In(tz)
	if req.StartTime != nil {
		start = req.StartTime.In(tz)
	}

	svcReq := services.PlanTripRequest{
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		CycleHoursUsed:  req.CurrentCycleUsed,
		Start:           start,
		Carrier: domain.CarrierInfo{
			Name:                req.CarrierName,
			MainOfficeAddress:   req.MainOfficeAddress,
			HomeTerminalAddress: req.HomeTerminalAddress,
			DriverName:          req.DriverName,
			CoDriverName:        req.CoDriverName,
			DVLManifestNo:       req.DVLManifestNo,
			ShipperCommodity:    req.ShipperCommodity,
			From:                req.CurrentLocation,
			To:                  req.DropoffLocation,
			CurrentCycleUsed:    req.CurrentCycleUsed,
		},
		Vehicle: domain.VehicleInfo{
			TruckTractor: req.TruckTractor,
			Trailer:      req.Trailer,
		},
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Provider)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAddressNotFound):
			log.Printf("calculate trip: %v", err)
			writeError(w, r, http.StatusBadRequest,
				"could not geocode one or more locations; try a more specific address (e.g. \"City, State\")")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, "invalid trip parameters")
		default:
			log.Printf("calculate trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(plan))
}

func toTripResponse(plan *services.TripPlan) dto.TripResponse {
	timeline := make([]dto.TimelineEventResponse, 0, len(plan.Timeline))
	for _, ev := range plan.Timeline {
		timeline = append(timeline, dto.TimelineEventResponse{
			Time:        ev.Start,
			Status:      ev.Status.String(),
			Description: ev.Description,
			Duration:    ev.DurationHours,
			Location:    ev.Location,
		})
	}

	sheets := make([]dto.LogSheetResponse, 0, len(plan.LogSheets))
	for _, s := range plan.LogSheets {
		sheets = append(sheets, toLogSheetResponse(s))
	}

	return dto.TripResponse{
		Route:      toRouteResponse(plan.Route, plan.Milestones),
		Timeline:   timeline,
		Compliance: toComplianceResponse(plan.Compliance),
		LogSheets:  sheets,
		Summary: dto.TripSummaryResponse{
			TotalDrivingHours: round2(plan.TotalDriving),
			TotalOnDutyHours:  round2(plan.TotalOnDuty),
			EstimatedArrival:  plan.EstimatedArrival,
		},
	}
}

func toRouteResponse(route domain.RouteInfo, milestones []domain.TimedMilestone) dto.RouteResponse {
	geometry := make([][]float64, 0, len(route.Geometry))
	for _, c := range route.Geometry {
		geometry = append(geometry, c.CoordsToList())
	}

	fuelStops := make([]dto.FuelStopResponse, 0, len(route.FuelStops))
	for _, fs := range route.FuelStops {
		fuelStops = append(fuelStops, dto.FuelStopResponse{
			Location:      fs.Location.CoordsToList(),
			DistanceMiles: round2(fs.DistanceMiles),
			Type:          "fuel",
		})
	}

	return dto.RouteResponse{
		DistanceMiles: round2(route.DistanceMiles),
		Geometry:      geometry,
		FuelStops:     fuelStops,
		StartCoords:   route.StartCoords.CoordsToList(),
		PickupCoords:  route.PickupCoords.CoordsToList(),
		DropoffCoords: route.DropoffCoords.CoordsToList(),
		Milestones:    toMilestoneResponses(milestones),
	}
}

func toMilestoneResponses(milestones []domain.TimedMilestone) []dto.MilestoneResponse {
	out := make([]dto.MilestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, dto.MilestoneResponse{
			Name:          m.Name,
			DistanceMiles: round2(m.DistanceMiles),
			Type:          m.Type.String(),
			ETA:           m.ReachedAt,
		})
	}
	return out
}

func toComplianceResponse(c domain.ComplianceResult) dto.ComplianceResponse {
	return dto.ComplianceResponse{
		Compliant:       c.Compliant,
		TotalOnDuty:     c.TotalOnDutyHours,
		Required70Hours: c.RequiredCycleHours,
		AvailableHours:  c.AvailableHours,
		ExceedsBy:       c.ExceedsBy,
	}
}

func toLogSheetResponse(s domain.LogSheet) dto.LogSheetResponse {
	return dto.LogSheetResponse{
		Date:                s.Date,
		From:                s.From,
		To:                  s.To,
		TotalMilesDriving:   s.TotalMilesDriving,
		TotalMileage:        s.TotalMileage,
		CarrierName:         s.CarrierName,
		MainOfficeAddress:   s.MainOfficeAddress,
		HomeTerminalAddress: s.HomeTerminalAddr,
		TruckTractorNumber:  s.TruckTractorNumber,
		TrailerNumber:       s.TrailerNumber,
		DriverName:          s.DriverName,
		CoDriverName:        s.CoDriverName,
		DVLManifestNo:       s.DVLManifestNo,
		ShipperCommodity:    s.ShipperCommodity,
		Grid:                toGridResponse(s.Grid),
		Totals: dto.TotalsResponse{
			OffDuty:          s.Totals.OffDuty,
			SleeperBerth:     s.Totals.SleeperBerth,
			Driving:          s.Totals.Driving,
			OnDutyNotDriving: s.Totals.OnDutyNotDriving,
		},
		Remarks: s.Remarks,
		Recap: dto.RecapResponse{
			OnDutyToday:         s.Recap.OnDutyToday,
			TotalLast7Days:      s.Recap.TotalLast7Days,
			AvailableTomorrow70: s.Recap.AvailableTomorrow70,
			TotalLast5Days:      s.Recap.TotalLast5Days,
		},
		IntermediateCities: toMilestoneResponses(s.IntermediateCities),
	}
}

func toGridResponse(g domain.Grid) dto.GridResponse {
	return dto.GridResponse{
		OffDuty:          toIntervalResponses(g.OffDuty),
		SleeperBerth:     toIntervalResponses(g.SleeperBerth),
		Driving:          toIntervalResponses(g.Driving),
		OnDutyNotDriving: toIntervalResponses(g.OnDutyNotDriving),
	}
}

func toIntervalResponses(track []domain.GridInterval) []dto.GridIntervalResponse {
	out := make([]dto.GridIntervalResponse, 0, len(track))
	for _, iv := range track {
		out = append(out, dto.GridIntervalResponse{Start: iv.StartMinute, End: iv.EndMinute})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
