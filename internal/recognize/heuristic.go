package recognize

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// Defaults are the assumptions the heuristic recognizer falls back on
// when a drawing does not state a value.
type Defaults struct {
	Width  float64
	Length float64
	Height float64

	InnerWallRatio    float64 // of the perimeter
	BathroomWallRatio float64 // of the perimeter
	BathroomFloorPart float64 // of the indoor area
	OutdoorFloorPart  float64 // of the indoor area

	Windows   model.Counted
	Doors     model.Counted
	Stairs    model.Stairs
	Bathrooms int
	Kitchen   model.Counted
	Shelter   model.Counted
	Columns   model.Linear
	Beams     model.Linear
	Concrete  model.ConcreteVolumes
}

// DefaultAssumptions returns the stock single-family residential profile.
func DefaultAssumptions() Defaults {
	return Defaults{
		Width:             12.4,
		Length:            12.8,
		Height:            2.8,
		InnerWallRatio:    0.8,
		BathroomWallRatio: 0.15,
		BathroomFloorPart: 0.1,
		OutdoorFloorPart:  0.2,
		Windows:           model.Counted{Count: 10, TotalArea: 15},
		Doors:             model.Counted{Count: 8, TotalArea: 16},
		Stairs:            model.Stairs{Count: 1, Steps: 14},
		Bathrooms:         2,
		Kitchen:           model.Counted{Count: 1, TotalArea: 12},
		Shelter:           model.Counted{Count: 1, TotalArea: 9},
		Columns:           model.Linear{Count: 4, TotalLength: 11.2},
		Beams:             model.Linear{Count: 6, TotalLength: 36},
		Concrete:          model.ConcreteVolumes{Foundation: 20, Floor: 30, Walls: 0, Roof: 15},
	}
}

// Heuristic is a placeholder recognizer. It trusts pre-recognized
// elements on the descriptor and otherwise derives every element from the
// rectangular building outline and fixed proportions.
type Heuristic struct {
	defaults Defaults
}

// NewHeuristic creates a Heuristic with the given assumptions.
func NewHeuristic(d Defaults) *Heuristic {
	return &Heuristic{defaults: d}
}

// Recognize implements Recognizer.
func (h *Heuristic) Recognize(ctx context.Context, bp model.Blueprint) (model.ElementSet, error) {
	if err := ctx.Err(); err != nil {
		return model.ElementSet{}, eris.Wrap(err, "recognize: context cancelled")
	}
	if bp.Elements != nil {
		return *bp.Elements, nil
	}

	d := h.defaults
	width := orDefault(bp.Width, d.Width)
	length := orDefault(bp.Length, d.Length)
	height := orDefault(bp.Height, d.Height)
	if width <= 0 || length <= 0 || height <= 0 {
		return model.ElementSet{}, eris.Wrapf(ErrUnrecognizable,
			"%s: non-positive dimensions %vx%vx%v", bp.DisplayName(), width, length, height)
	}

	outline, err := rectangle(width, length)
	if err != nil {
		return model.ElementSet{}, eris.Wrapf(err, "recognize: outline of %s", bp.DisplayName())
	}
	area := outline.Area()
	perimeter := outline.Length()

	indoor := orDefault(bp.IndoorFloorArea, area)
	bathFloor := indoor * d.BathroomFloorPart

	zap.L().Debug("recognize: derived outline",
		zap.String("document", bp.DisplayName()),
		zap.Float64("area", area),
		zap.Float64("perimeter", perimeter),
	)

	return model.ElementSet{
		Outline: model.Outline{Width: width, Length: length, Area: area, Perimeter: perimeter},
		Walls: model.WallSet{
			Outer:    wall(perimeter, height),
			Inner:    wall(perimeter*d.InnerWallRatio, height),
			Bathroom: wall(perimeter*d.BathroomWallRatio, height),
		},
		Floors: model.FloorSet{
			Indoor:   model.Surface{TotalArea: indoor - bathFloor},
			Outdoor:  model.Surface{TotalArea: indoor * d.OutdoorFloorPart},
			Bathroom: model.Surface{TotalArea: bathFloor},
		},
		Ceilings: model.Surface{TotalArea: indoor},
		Roofs:    model.Surface{TotalArea: area},
		Openings: model.OpeningSet{Windows: d.Windows, Doors: d.Doors},
		Stairs:   d.Stairs,
		SpecialRooms: model.RoomSet{
			Bathroom: model.Counted{Count: d.Bathrooms, TotalArea: bathFloor},
			Kitchen:  d.Kitchen,
			Shelter:  d.Shelter,
		},
		Columns:  d.Columns,
		Beams:    d.Beams,
		Concrete: d.Concrete,
	}, nil
}

// rectangle builds the closed outline polygon anchored at the origin.
func rectangle(width, length float64) (*geom.Polygon, error) {
	return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{{
		{0, 0}, {width, 0}, {width, length}, {0, length}, {0, 0},
	}})
}

func wall(length, height float64) model.Surface {
	return model.Surface{TotalLength: length, TotalArea: length * height}
}

func orDefault(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}
