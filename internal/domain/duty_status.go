package domain

import (
	"encoding/json"
	"fmt"
)

// DutyStatus is the closed set of driver duty statuses recorded on an ELD log.
type DutyStatus int

const (
	StatusOffDuty DutyStatus = iota
	StatusSleeperBerth
	StatusDriving
	StatusOnDutyNotDriving
)

// AllStatuses lists every duty status in grid-row order.
var AllStatuses = [4]DutyStatus{
	StatusOffDuty,
	StatusSleeperBerth,
	StatusDriving,
	StatusOnDutyNotDriving,
}

func (s DutyStatus) String() string {
	switch s {
	case StatusOffDuty:
		return "off_duty"
	case StatusSleeperBerth:
		return "sleeper_berth"
	case StatusDriving:
		return "driving"
	case StatusOnDutyNotDriving:
		return "on_duty_not_driving"
	default:
		return "unknown"
	}
}

// OnDuty reports whether the status counts toward the on-duty cycle total.
func (s DutyStatus) OnDuty() bool {
	return s == StatusDriving || s == StatusOnDutyNotDriving
}

func ParseDutyStatus(v string) (DutyStatus, bool) {
	switch v {
	case "off_duty":
		return StatusOffDuty, true
	case "sleeper_berth":
		return StatusSleeperBerth, true
	case "driving":
		return StatusDriving, true
	case "on_duty_not_driving":
		return StatusOnDutyNotDriving, true
	default:
		return StatusOffDuty, false
	}
}

func (s DutyStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DutyStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unmarshal duty status: %w", err)
	}

	parsed, ok := ParseDutyStatus(v)
	if !ok {
		return fmt.Errorf("unmarshal duty status: unknown value %q", v)
	}
	*s = parsed
	return nil
}
