package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MilestoneType classifies a named point along the planned route.
type MilestoneType int

const (
	MilestoneStart MilestoneType = iota
	MilestonePickup
	MilestoneDropoff
	MilestoneIntermediate
)

func (t MilestoneType) String() string {
	switch t {
	case MilestoneStart:
		return "start"
	case MilestonePickup:
		return "pickup"
	case MilestoneDropoff:
		return "dropoff"
	case MilestoneIntermediate:
		return "intermediate"
	default:
		return "unknown"
	}
}

func ParseMilestoneType(v string) (MilestoneType, bool) {
	switch v {
	case "start":
		return MilestoneStart, true
	case "pickup":
		return MilestonePickup, true
	case "dropoff":
		return MilestoneDropoff, true
	case "intermediate":
		return MilestoneIntermediate, true
	default:
		return MilestoneIntermediate, false
	}
}

func (t MilestoneType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *MilestoneType) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unmarshal milestone type: %w", err)
	}

	parsed, ok := ParseMilestoneType(v)
	if !ok {
		return fmt.Errorf("unmarshal milestone type: unknown value %q", v)
	}
	*t = parsed
	return nil
}

// CityMilestone is a named route point at a known cumulative distance from
// the trip start. Milestones come from the routing collaborator.
type CityMilestone struct {
	Name          string
	DistanceMiles float64
	Type          MilestoneType
	Coordinates   Coordinates
}

// TimedMilestone is a CityMilestone annotated with the wall-clock time the
// driver is expected to reach it.
type TimedMilestone struct {
	CityMilestone
	ReachedAt time.Time
}
