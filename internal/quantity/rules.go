package quantity

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// RuleSet maps a dotted leaf path to its waste rule.
type RuleSet map[string]WasteRule

// Sheet and tile areas used by the default rules.
const (
	YellowSheetArea = 1.2 * 3.6
	PinkSheetArea   = 1.2 * 3.0
	BlueSheetArea   = 1.2 * 2.4
	TileArea        = 0.6 * 0.6

	ScrewsPerPackage = 1000
	TapeRollMeters   = 90
	TruckCapacityM3  = 9
)

// DefaultRules returns the built-in rule for every leaf the takeoff
// builder can emit.
func DefaultRules() RuleSet {
	each := WasteRule{Unit: UnitEach, BatchSize: 1}
	kg := WasteRule{Unit: UnitKg, BatchSize: 1}
	meter := WasteRule{Unit: UnitMeter, BatchSize: 1}
	m3 := WasteRule{Unit: UnitCubicMeter, BatchSize: 1}

	return RuleSet{
		"drywall.yellow":                     {Unit: UnitSheet, BatchSize: YellowSheetArea, WasteFactor: 0.15},
		"drywall.pink":                       {Unit: UnitSheet, BatchSize: PinkSheetArea, WasteFactor: 0.10},
		"drywall.blue":                       {Unit: UnitSheet, BatchSize: BlueSheetArea, WasteFactor: 0.12},
		"drywall.accessories.screws":         {Unit: UnitPackage, BatchSize: ScrewsPerPackage},
		"drywall.accessories.tape":           {Unit: UnitRoll, BatchSize: TapeRollMeters},
		"drywall.accessories.joint_compound": kg,
		"drywall.accessories.profiles.c60":   meter,
		"drywall.accessories.profiles.u50":   meter,

		"concrete.volumes.foundation": m3,
		"concrete.volumes.floor":      m3,
		"concrete.volumes.walls":      m3,
		"concrete.volumes.roof":       m3,
		"concrete.reinforcement":      kg,
		"concrete.truck_loads":        {Unit: UnitTruckload, BatchSize: TruckCapacityM3},

		"floors.indoor.tiles":      {Unit: UnitEach, BatchSize: TileArea, WasteFactor: 0.08},
		"floors.indoor.adhesive":   kg,
		"floors.indoor.grout":      kg,
		"floors.outdoor.tiles":     {Unit: UnitEach, BatchSize: TileArea, WasteFactor: 0.10},
		"floors.outdoor.adhesive":  kg,
		"floors.outdoor.grout":     kg,
		"floors.bathroom.tiles":    {Unit: UnitEach, BatchSize: TileArea, WasteFactor: 0.12},
		"floors.bathroom.adhesive": kg,
		"floors.bathroom.grout":    kg,

		"sealing.units.bathroom": each,
		"sealing.areas.roof":     {Unit: UnitSqm, BatchSize: 1, WasteFactor: 0.10},
		"sealing.areas.outdoor":  {Unit: UnitSqm, BatchSize: 1, WasteFactor: 0.10},

		"electricity.points.light":         each,
		"electricity.points.power":         each,
		"electricity.points.communication": each,
		"electricity.cabling":              meter,

		"plumbing.points.water_hot":  each,
		"plumbing.points.water_cold": each,
		"plumbing.points.sewer":      each,
		"plumbing.access_points":     each,
		"plumbing.piping.water":      meter,
		"plumbing.piping.sewer":      meter,

		"hardware.doors":        each,
		"hardware.windows":      each,
		"hardware.window_sills": meter,
	}
}

// Lookup returns the rule for path.
func (rs RuleSet) Lookup(path string) (WasteRule, bool) {
	r, ok := rs[path]
	return r, ok
}

// Merge returns a copy of rs with every rule in overrides applied on top.
func (rs RuleSet) Merge(overrides RuleSet) RuleSet {
	out := make(RuleSet, len(rs)+len(overrides))
	for k, v := range rs {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Validate checks every rule, reporting the first invalid path in sorted
// order.
func (rs RuleSet) Validate() error {
	keys := make([]string, 0, len(rs))
	for k := range rs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := rs[k].Validate(); err != nil {
			return eris.Wrapf(err, "rule %s", k)
		}
	}
	return nil
}

// LoadRules reads a YAML file of rule overrides and applies them on top of
// DefaultRules. The file has a top-level "rules" mapping keyed by dotted
// path.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "quantity: read rules %s", path)
	}

	var wrapper struct {
		Rules RuleSet `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "quantity: parse rules")
	}

	rules := DefaultRules().Merge(wrapper.Rules)
	if err := rules.Validate(); err != nil {
		return nil, eris.Wrap(err, "quantity: validate rules")
	}
	return rules, nil
}
