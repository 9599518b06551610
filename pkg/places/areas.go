package places

import (
	"encoding/json"
)

// LatLng is a latitude/longitude pair in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Area is a geographic search area, either circular or rectangular. Call
// sites that accept only one variant type-switch and reject the other.
type Area interface {
	isArea()
}

const (
	// MinRadiusMeters is the smallest radius accepted for a circular area.
	MinRadiusMeters = 1

	// MaxRadiusMeters is the largest radius accepted for a circular area.
	MaxRadiusMeters = 50000
)

// CircularArea is a circle defined by a center point and a radius in meters.
type CircularArea struct {
	Center LatLng
	Radius int
}

// NewCircularArea validates the radius and returns the area.
func NewCircularArea(center LatLng, radius int) (CircularArea, error) {
	if radius < MinRadiusMeters || radius > MaxRadiusMeters {
		return CircularArea{}, validationErrorf("radius must be between %d and %d meters, got %d", MinRadiusMeters, MaxRadiusMeters, radius)
	}
	return CircularArea{Center: center, Radius: radius}, nil
}

func (CircularArea) isArea() {}

type circularAreaWire struct {
	Center LatLng `json:"center"`
	Radius int    `json:"radius"`
}

func (a CircularArea) MarshalJSON() ([]byte, error) {
	return json.Marshal(circularAreaWire{Center: a.Center, Radius: a.Radius})
}

func (a *CircularArea) UnmarshalJSON(data []byte) error {
	var wire circularAreaWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	area, err := NewCircularArea(wire.Center, wire.Radius)
	if err != nil {
		return err
	}
	*a = area
	return nil
}

// RectangularArea is a rectangle defined by its south-west and north-east
// corners. No range constraint is enforced on the corners.
type RectangularArea struct {
	SouthWest LatLng
	NorthEast LatLng
}

func (RectangularArea) isArea() {}

type rectangularAreaWire struct {
	Low  LatLng `json:"low"`
	High LatLng `json:"high"`
}

func (a RectangularArea) MarshalJSON() ([]byte, error) {
	return json.Marshal(rectangularAreaWire{Low: a.SouthWest, High: a.NorthEast})
}

func (a *RectangularArea) UnmarshalJSON(data []byte) error {
	var wire rectangularAreaWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	a.SouthWest = wire.Low
	a.NorthEast = wire.High
	return nil
}
