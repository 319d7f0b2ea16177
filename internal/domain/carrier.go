package domain

// CarrierInfo is pass-through carrier and driver metadata stamped onto each
// log sheet header. None of the strings are parsed, except From/To, which the
// remark annotator may split on commas for best-effort location context.
type CarrierInfo struct {
	Name                string
	MainOfficeAddress   string
	HomeTerminalAddress string
	DriverName          string
	CoDriverName        string
	DVLManifestNo       string
	ShipperCommodity    string
	From                string
	To                  string
	CurrentCycleUsed    float64
}

// VehicleInfo is pass-through vehicle metadata for the log sheet header.
type VehicleInfo struct {
	TruckTractor string
	Trailer      string
	TotalMileage string
}
