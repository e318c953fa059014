package domain

// TankLevel holds the fill state of one propellant tank. Fullness is the
// percentage of the gauge strip that is lit, in [0, 100].
type TankLevel struct {
	Fullness float64 `json:"fullness"`
}

// FuelLevels groups the two propellant tanks tracked per vehicle.
type FuelLevels struct {
	LOX TankLevel `json:"lox"`
	CH4 TankLevel `json:"ch4"`
}

// VehicleTelemetry is the extracted state of one vehicle at one frame.
// Speed and Altitude are nil when recognition produced nothing usable.
type VehicleTelemetry struct {
	Speed    *int              `json:"speed"`
	Altitude *int              `json:"altitude"`
	Engines  map[string][]bool `json:"engines"`
	Fuel     FuelLevels        `json:"fuel"`
}

// FrameRecord is the full extraction result for one sampled frame. A worker
// creates it once; the aggregator may later attach the real-time fields.
// Nothing else is mutated after creation.
type FrameRecord struct {
	FrameNumber int              `json:"frame_number"`
	Superheavy  VehicleTelemetry `json:"superheavy"`
	Starship    VehicleTelemetry `json:"starship"`
	Clock       *ClockReading    `json:"time"`

	// Error is set when the whole frame degraded (worker-level failure);
	// field-level failures show up as nil fields instead.
	Error string `json:"error,omitempty"`

	// RealTimeSeconds is mission-elapsed time relative to the zero-time
	// anchor. Absent when no anchor was found run-wide.
	RealTimeSeconds *float64  `json:"real_time_seconds,omitempty"`
	RealTime        *RealTime `json:"real_time,omitempty"`
}

// ErrorRecord builds the degraded, field-empty record a worker emits for
// every frame of a batch that failed as a whole.
func ErrorRecord(frameNumber int, err error) FrameRecord {
	return FrameRecord{FrameNumber: frameNumber, Error: err.Error()}
}
