// Package quantity turns continuous measurements into purchasable units.
package quantity

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// Unit is the purchasable unit a quantity is expressed in.
type Unit string

const (
	UnitSheet      Unit = "sheet"
	UnitRoll       Unit = "roll"
	UnitKg         Unit = "kg"
	UnitMeter      Unit = "meter"
	UnitSqm        Unit = "sqm"
	UnitEach       Unit = "unit"
	UnitTruckload  Unit = "truckload"
	UnitPackage    Unit = "package"
	UnitCubicMeter Unit = "cubic_meter"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitSheet, UnitRoll, UnitKg, UnitMeter, UnitSqm, UnitEach,
		UnitTruckload, UnitPackage, UnitCubicMeter:
		return true
	}
	return false
}

// ErrInvalidRule is returned for a rule that cannot convert anything.
var ErrInvalidRule = eris.New("invalid waste rule")

// WasteRule governs how a continuous metric becomes a discrete count.
type WasteRule struct {
	Unit        Unit    `json:"unit" yaml:"unit"`
	BatchSize   float64 `json:"batch_size" yaml:"batch_size"`
	WasteFactor float64 `json:"waste_factor" yaml:"waste_factor"`
}

// Validate checks the rule constraints: positive batch size and a waste
// factor in [0,1).
func (r WasteRule) Validate() error {
	if !r.Unit.Valid() {
		return eris.Wrapf(ErrInvalidRule, "unknown unit %q", r.Unit)
	}
	if !(r.BatchSize > 0) || math.IsInf(r.BatchSize, 0) {
		return eris.Wrapf(ErrInvalidRule, "batch size %v must be positive", r.BatchSize)
	}
	if r.WasteFactor < 0 || r.WasteFactor >= 1 || math.IsNaN(r.WasteFactor) {
		return eris.Wrapf(ErrInvalidRule, "waste factor %v outside [0,1)", r.WasteFactor)
	}
	return nil
}

// Convert returns ceil((metric / batchSize) * (1 + wasteFactor)). Rounding
// is always upward: a fractional sheet is a whole sheet. Inputs are taken
// at their shortest decimal form and divided exactly, so 3.6 m² of 0.36 m²
// tiles is 10 tiles while anything above it is 11.
func Convert(metric float64, rule WasteRule) (float64, error) {
	if metric < 0 || math.IsNaN(metric) || math.IsInf(metric, 0) {
		return 0, eris.Wrapf(model.ErrInvalidMeasurement, "metric %v", metric)
	}
	if err := rule.Validate(); err != nil {
		return 0, err
	}

	need := decimal.NewFromFloat(metric).Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(rule.WasteFactor)))
	units, rem := need.QuoRem(decimal.NewFromFloat(rule.BatchSize), 0)
	if rem.IsPositive() {
		units = units.Add(decimal.NewFromInt(1))
	}
	return units.InexactFloat64(), nil
}
