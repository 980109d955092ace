package awbridge

import (
	"github.com/matafokka/aerialware-bridge/planner"
)

type Segment = planner.Segment

// FlightMeta is the camera/flight metadata attached to every output layer as
// its single feature's attribute row.
type FlightMeta struct {
	MaxAreaHeight    float64 // max capture area, meters
	MaxAreaWidth     float64
	MetersPerPixel   float64
	ResolutionHeight int // camera sensor, pixels
	ResolutionWidth  int
	FocalLength      float64 // millimeters
}

// FlightPlan is everything read back from the planner after the user is done.
type FlightPlan struct {
	Meridians    []Segment
	Horizontals  []Segment
	FlightHeight float64
	Meta         FlightMeta
}

// LayerDraft is a fully built output layer that has not touched the host
// project yet. Geometry is a LINESTRING M in WKT form.
type LayerDraft struct {
	Name string
	Wkt  string
	Meta FlightMeta
}
