package domain

// FuelStop marks a recommended fueling point along the route geometry.
type FuelStop struct {
	Location      Coordinates
	DistanceMiles float64
}

// RouteInfo is the routing collaborator's answer for one trip: the driveable
// geometry through current -> pickup -> dropoff, its total distance, and the
// named milestones and fuel stops sampled along it.
// It is immutable planning data and contains no side effects.
type RouteInfo struct {
	DistanceMiles float64
	Geometry      []Coordinates
	StartCoords   Coordinates
	PickupCoords  Coordinates
	DropoffCoords Coordinates
	Milestones    []CityMilestone
	FuelStops     []FuelStop
}
