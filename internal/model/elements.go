package model

// ElementSet is the recognized content of one drawing. Areas are in m²,
// lengths in m, volumes in m³.
type ElementSet struct {
	Outline      Outline         `json:"outline" yaml:"outline"`
	Walls        WallSet         `json:"walls" yaml:"walls"`
	Floors       FloorSet        `json:"floors" yaml:"floors"`
	Ceilings     Surface         `json:"ceilings" yaml:"ceilings"`
	Roofs        Surface         `json:"roofs" yaml:"roofs"`
	Openings     OpeningSet      `json:"openings" yaml:"openings"`
	Stairs       Stairs          `json:"stairs" yaml:"stairs"`
	SpecialRooms RoomSet         `json:"special_rooms" yaml:"special_rooms"`
	Columns      Linear          `json:"columns" yaml:"columns"`
	Beams        Linear          `json:"beams" yaml:"beams"`
	Concrete     ConcreteVolumes `json:"concrete" yaml:"concrete"`
}

// Outline is the external contour of the building.
type Outline struct {
	Width     float64 `json:"width" yaml:"width"`
	Length    float64 `json:"length" yaml:"length"`
	Area      float64 `json:"area" yaml:"area"`
	Perimeter float64 `json:"perimeter" yaml:"perimeter"`
}

// Surface is a measured planar element group.
type Surface struct {
	TotalLength float64 `json:"total_length,omitempty" yaml:"total_length,omitempty"`
	TotalArea   float64 `json:"total_area" yaml:"total_area"`
}

// WallSet groups walls by construction type.
type WallSet struct {
	Outer    Surface `json:"outer" yaml:"outer"`
	Inner    Surface `json:"inner" yaml:"inner"`
	Bathroom Surface `json:"bathroom" yaml:"bathroom"`
}

// FloorSet groups floors by finish zone.
type FloorSet struct {
	Indoor   Surface `json:"indoor" yaml:"indoor"`
	Outdoor  Surface `json:"outdoor" yaml:"outdoor"`
	Bathroom Surface `json:"bathroom" yaml:"bathroom"`
}

// Counted is a group of discrete elements.
type Counted struct {
	Count     int     `json:"count" yaml:"count"`
	TotalArea float64 `json:"total_area,omitempty" yaml:"total_area,omitempty"`
}

// OpeningSet groups windows and doors.
type OpeningSet struct {
	Windows Counted `json:"windows" yaml:"windows"`
	Doors   Counted `json:"doors" yaml:"doors"`
}

// Stairs describes staircases on the drawing.
type Stairs struct {
	Count int `json:"count" yaml:"count"`
	Steps int `json:"steps" yaml:"steps"`
}

// RoomSet groups rooms that carry special requirements.
type RoomSet struct {
	Bathroom Counted `json:"bathroom" yaml:"bathroom"`
	Kitchen  Counted `json:"kitchen" yaml:"kitchen"`
	Shelter  Counted `json:"shelter" yaml:"shelter"`
}

// Linear is a group of linear structural elements.
type Linear struct {
	Count       int     `json:"count" yaml:"count"`
	TotalLength float64 `json:"total_length" yaml:"total_length"`
}

// ConcreteVolumes holds cast-in-place concrete by structural element.
type ConcreteVolumes struct {
	Foundation float64 `json:"foundation" yaml:"foundation"`
	Floor      float64 `json:"floor" yaml:"floor"`
	Walls      float64 `json:"walls" yaml:"walls"`
	Roof       float64 `json:"roof" yaml:"roof"`
}

// Total returns the sum of all concrete volumes.
func (c ConcreteVolumes) Total() float64 {
	return c.Foundation + c.Floor + c.Walls + c.Roof
}
