package domain

import "image"

// Role names matched by the per-frame extractor. A region's Role ties a
// calibrated rectangle to one on-screen telemetry readout.
const (
	RoleSuperheavySpeed    = "sh_speed"
	RoleSuperheavyAltitude = "sh_altitude"
	RoleStarshipSpeed      = "ss_speed"
	RoleStarshipAltitude   = "ss_altitude"
	RoleTime               = "time"
)

// Region is a calibrated rectangle in source-frame pixel coordinates with an
// optional activation window. Regions are parsed once from configuration and
// immutable until an explicit reload.
type Region struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`

	// StartFrame and EndFrame bound the activation window
	// [StartFrame, EndFrame). A nil bound is open on that side.
	StartFrame *int `json:"start_frame"`
	EndFrame   *int `json:"end_frame"`

	// Role names the readout this region covers, e.g. "sh_speed".
	Role string `json:"match_to_role"`
}

// ActiveAt reports whether the region is active for the given frame index.
// A nil index matches every region. Window bounds are inclusive-start,
// exclusive-end.
func (r Region) ActiveAt(frameIdx *int) bool {
	if frameIdx == nil {
		return true
	}
	if r.StartFrame != nil && *frameIdx < *r.StartFrame {
		return false
	}
	if r.EndFrame != nil && *frameIdx >= *r.EndFrame {
		return false
	}
	return true
}

// Rect returns the region rectangle in image coordinates.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// RegionSet is one parsed revision of the region configuration.
type RegionSet struct {
	Version  string   `json:"version"`
	TimeUnit string   `json:"time_unit"`
	Regions  []Region `json:"regions"`
}
