package minimap

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// Rect is an axis-aligned room outline in map pixels
type Rect struct {
	X, Y, W, H float64
}

// Room is a labelled area of the floor plan
type Room struct {
	Label   string
	Bounds  Rect
	polygon geom.Polygon
}

// Area returns the room area in square map pixels
func (r Room) Area() float64 {
	return r.polygon.Area()
}

// LabelAnchor returns the point where the room label is drawn
func (r Room) LabelAnchor() (float64, float64) {
	if xy, ok := r.polygon.Centroid().XY(); ok {
		return xy.X, xy.Y
	}
	return r.Bounds.X + r.Bounds.W/2, r.Bounds.Y + r.Bounds.H/2
}

// FloorPlan is a set of room outlines drawn for a map of Size pixels
type FloorPlan struct {
	Size  float64
	rooms []Room
}

func rectPolygon(r Rect) (geom.Polygon, error) {
	coords := []float64{
		r.X, r.Y,
		r.X + r.W, r.Y,
		r.X + r.W, r.Y + r.H,
		r.X, r.Y + r.H,
		r.X, r.Y,
	}
	ring, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return geom.Polygon{}, err
	}
	return geom.NewPolygon([]geom.LineString{ring})
}

// NewFloorPlan validates the room outlines. Earlier rooms win where
// outlines touch.
func NewFloorPlan(size float64, labels []string, rects []Rect) (*FloorPlan, error) {
	if len(labels) != len(rects) {
		return nil, fmt.Errorf("floor plan has %d labels for %d rooms", len(labels), len(rects))
	}
	plan := &FloorPlan{Size: size}
	for i, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			return nil, fmt.Errorf("room %s has an empty outline", labels[i])
		}
		poly, err := rectPolygon(r)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", labels[i], err)
		}
		plan.rooms = append(plan.rooms, Room{Label: labels[i], Bounds: r, polygon: poly})
	}
	return plan, nil
}

// DefaultFloorPlan is the apartment layout for the 180 pixel map
func DefaultFloorPlan() *FloorPlan {
	plan, err := NewFloorPlan(DefaultSize,
		[]string{"BR1", "Living", "Master", "BR2", "Kitchen", "Dining", "Bal1", "Bal2"},
		[]Rect{
			{15, 15, 50, 50},
			{65, 15, 60, 70},
			{125, 15, 40, 60},
			{15, 65, 50, 45},
			{15, 110, 50, 55},
			{65, 85, 60, 80},
			{165, 15, 15, 30},
			{165, 135, 15, 30},
		})
	if err != nil {
		panic(err)
	}
	return plan
}

// Rooms returns the room outlines in lookup order
func (f *FloorPlan) Rooms() []Room {
	out := make([]Room, len(f.rooms))
	copy(out, f.rooms)
	return out
}

// RoomAt returns the label of the room containing c on a map of mapSize
// pixels. Coordinates are rescaled when the map is drawn at another size.
func (f *FloorPlan) RoomAt(c Coordinate, mapSize float64) (string, bool) {
	if f == nil {
		return "", false
	}
	x, y := c.X, c.Y
	if mapSize > 0 && mapSize != f.Size {
		x = x * f.Size / mapSize
		y = y * f.Size / mapSize
	}
	pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}, Type: geom.DimXY})
	if err != nil {
		return "", false
	}
	for _, room := range f.rooms {
		if geom.Intersects(room.polygon.AsGeometry(), pt.AsGeometry()) {
			return room.Label, true
		}
	}
	return "", false
}
