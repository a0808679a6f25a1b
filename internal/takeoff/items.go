package takeoff

import "github.com/sells-group/takeoff-cli/internal/model"

// Coverage rates per unit of source metric.
const (
	screwsPerSqm         = 15.0
	tapeMetersPerSqm     = 0.8
	jointCompoundKgPerM2 = 0.3
	c60MetersPerSqm      = 1.2
	u50MetersPerSqm      = 0.5

	reinforcementKgPerM3 = 100.0

	lightPointsPerSqm = 0.5
	powerPointsPerSqm = 0.7
	commPointsPerSqm  = 0.2
	cableMetersPerSqm = 3.0

	waterPointsPerBathroom = 5
	waterPointsPerKitchen  = 2
	sewerPointsPerBathroom = 3
	sewerPointsPerKitchen  = 1
	accessPointsPerSewer   = 0.5
	pipeMetersPerWater     = 3.0
	pipeMetersPerSewer     = 2.0

	sillMetersPerWindow = 1.2
)

// item is one leaf the builder can emit. The waste rule for it is looked
// up by its dotted path.
type item struct {
	path   string
	metric func(model.ElementSet) float64
	notes  string
}

// floorZone carries the per-zone adhesive and grout rates.
type floorZone struct {
	key      string
	surface  func(model.ElementSet) float64
	adhesive float64
	grout    float64
	label    string
}

var floorZones = []floorZone{
	{"indoor", func(e model.ElementSet) float64 { return e.Floors.Indoor.TotalArea }, 4.5, 0.5, "indoor floor area"},
	{"outdoor", func(e model.ElementSet) float64 { return e.Floors.Outdoor.TotalArea }, 5, 0.6, "outdoor floor area"},
	{"bathroom", func(e model.ElementSet) float64 { return e.Floors.Bathroom.TotalArea }, 5, 0.8, "bathroom floor area"},
}

// drywallArea is every boarded surface: all walls plus ceilings.
func drywallArea(e model.ElementSet) float64 {
	return e.Walls.Outer.TotalArea + e.Walls.Inner.TotalArea + e.Walls.Bathroom.TotalArea + e.Ceilings.TotalArea
}

// serviceArea is the floor area served by electrical points.
func serviceArea(e model.ElementSet) float64 {
	return e.Floors.Indoor.TotalArea + e.Floors.Bathroom.TotalArea
}

func waterPoints(e model.ElementSet) float64 {
	return float64(e.SpecialRooms.Bathroom.Count*waterPointsPerBathroom + e.SpecialRooms.Kitchen.Count*waterPointsPerKitchen)
}

func sewerPoints(e model.ElementSet) float64 {
	return float64(e.SpecialRooms.Bathroom.Count*sewerPointsPerBathroom + e.SpecialRooms.Kitchen.Count*sewerPointsPerKitchen)
}

func perArea(area func(model.ElementSet) float64, rate float64) func(model.ElementSet) float64 {
	return func(e model.ElementSet) float64 { return area(e) * rate }
}

// items is the full takeoff table in emission order.
var items = buildItems()

func buildItems() []item {
	out := []item{
		{"drywall.yellow", func(e model.ElementSet) float64 { return e.Walls.Outer.TotalArea }, "outer wall area"},
		{"drywall.pink", func(e model.ElementSet) float64 { return e.Walls.Inner.TotalArea + e.Ceilings.TotalArea }, "inner wall and ceiling area"},
		{"drywall.blue", func(e model.ElementSet) float64 { return e.Walls.Bathroom.TotalArea }, "bathroom wall area"},
		{"drywall.accessories.screws", perArea(drywallArea, screwsPerSqm), "15 screws per boarded m2"},
		{"drywall.accessories.tape", perArea(drywallArea, tapeMetersPerSqm), "0.8 m tape per boarded m2"},
		{"drywall.accessories.joint_compound", perArea(drywallArea, jointCompoundKgPerM2), "0.3 kg per boarded m2"},
		{"drywall.accessories.profiles.c60", perArea(drywallArea, c60MetersPerSqm), "1.2 m per boarded m2"},
		{"drywall.accessories.profiles.u50", perArea(drywallArea, u50MetersPerSqm), "0.5 m per boarded m2"},

		{"concrete.volumes.foundation", func(e model.ElementSet) float64 { return e.Concrete.Foundation }, "foundation volume"},
		{"concrete.volumes.floor", func(e model.ElementSet) float64 { return e.Concrete.Floor }, "floor slab volume"},
		{"concrete.volumes.walls", func(e model.ElementSet) float64 { return e.Concrete.Walls }, "concrete wall volume"},
		{"concrete.volumes.roof", func(e model.ElementSet) float64 { return e.Concrete.Roof }, "roof slab volume"},
		{"concrete.reinforcement", func(e model.ElementSet) float64 { return e.Concrete.Total() * reinforcementKgPerM3 }, "100 kg steel per m3"},
		{"concrete.truck_loads", func(e model.ElementSet) float64 { return e.Concrete.Total() }, "9 m3 per truck"},
	}

	for _, z := range floorZones {
		out = append(out,
			item{"floors." + z.key + ".tiles", z.surface, "60x60 tiles over " + z.label},
			item{"floors." + z.key + ".adhesive", perArea(z.surface, z.adhesive), "adhesive over " + z.label},
			item{"floors." + z.key + ".grout", perArea(z.surface, z.grout), "grout over " + z.label},
		)
	}

	return append(out,
		item{"sealing.units.bathroom", func(e model.ElementSet) float64 { return float64(e.SpecialRooms.Bathroom.Count) }, "one unit per wet room"},
		item{"sealing.areas.roof", func(e model.ElementSet) float64 { return e.Roofs.TotalArea }, "roof area"},
		item{"sealing.areas.outdoor", func(e model.ElementSet) float64 { return e.Floors.Outdoor.TotalArea }, "outdoor floor area"},

		item{"electricity.points.light", perArea(serviceArea, lightPointsPerSqm), "0.5 per served m2"},
		item{"electricity.points.power", perArea(serviceArea, powerPointsPerSqm), "0.7 per served m2"},
		item{"electricity.points.communication", perArea(serviceArea, commPointsPerSqm), "0.2 per served m2"},
		item{"electricity.cabling", perArea(serviceArea, cableMetersPerSqm), "3 m per served m2"},

		item{"plumbing.points.water_hot", func(e model.ElementSet) float64 { return waterPoints(e) / 2 }, "half of water points"},
		item{"plumbing.points.water_cold", waterPoints, "5 per bathroom, 2 per kitchen"},
		item{"plumbing.points.sewer", sewerPoints, "3 per bathroom, 1 per kitchen"},
		item{"plumbing.access_points", func(e model.ElementSet) float64 { return sewerPoints(e) * accessPointsPerSewer }, "one per two sewer points"},
		item{"plumbing.piping.water", func(e model.ElementSet) float64 { return waterPoints(e) * 1.5 * pipeMetersPerWater }, "3 m per hot or cold point"},
		item{"plumbing.piping.sewer", func(e model.ElementSet) float64 { return sewerPoints(e) * pipeMetersPerSewer }, "2 m per sewer point"},

		item{"hardware.doors", func(e model.ElementSet) float64 { return float64(e.Openings.Doors.Count) }, "door count"},
		item{"hardware.windows", func(e model.ElementSet) float64 { return float64(e.Openings.Windows.Count) }, "window count"},
		item{"hardware.window_sills", func(e model.ElementSet) float64 { return float64(e.Openings.Windows.Count) * sillMetersPerWindow }, "1.2 m per window"},
	)
}

// Paths returns the dotted path of every leaf the builder can emit.
func Paths() []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.path
	}
	return out
}
