package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/quantity"
)

func docA() Tree {
	return WithTotals(Tree{
		"drywall": Tree{
			"yellow": priced(10, 50, quantity.UnitSheet, "outer walls"),
			"accessories": Tree{
				"screws": priced(2, 30, quantity.UnitPackage, "packs of 1000"),
			},
		},
		"sealing": Tree{
			"roof": priced(40, 35, quantity.UnitSqm, "roof membrane"),
		},
		"misc": Num(10),
	})
}

func docB() Tree {
	return WithTotals(Tree{
		"drywall": Tree{
			"yellow": priced(7, 55, quantity.UnitSheet, "outer walls"),
			"accessories": Tree{
				"screws": priced(1, 30, quantity.UnitPackage, "packs of 1000"),
			},
		},
		"hardware": Tree{
			"doors": priced(3, 400, quantity.UnitEach, ""),
		},
		"misc": Num(2.5),
	})
}

func TestCombine_TwoDocumentsExample(t *testing.T) {
	t.Parallel()
	one := Tree{"drywall": Tree{"yellow": PricedLine{Quantity: d(10), Unit: quantity.UnitSheet, UnitPrice: d(50), Price: d(500)}}}

	got, err := Combine(one, one)
	require.NoError(t, err)

	yellow, ok := got.Get("drywall", "yellow")
	require.True(t, ok)
	line := yellow.(PricedLine)
	assert.Equal(t, "20", line.Quantity.String())
	assert.Equal(t, "1000", line.Price.String())
	assert.Equal(t, "50", line.UnitPrice.String())

	total, _ := got.Total()
	assert.Equal(t, "1000", total.String())
}

func TestCombine_Commutative(t *testing.T) {
	t.Parallel()
	ab, err := Combine(docA(), docB())
	require.NoError(t, err)
	ba, err := Combine(docB(), docA())
	require.NoError(t, err)

	assert.Equal(t, flat(ab), flat(ba))
}

func TestCombine_Associative(t *testing.T) {
	t.Parallel()
	c := WithTotals(Tree{
		"drywall": Tree{"yellow": priced(1, 60, quantity.UnitSheet, "outer walls")},
		"misc":    Num(1),
	})

	a, err := Combine(docA())
	require.NoError(t, err)
	nested, err := Combine(a, docB())
	require.NoError(t, err)
	flatAB, err := Combine(docA(), docB())
	require.NoError(t, err)
	assert.Equal(t, flat(flatAB), flat(nested))

	left, err := Combine(flatAB, c)
	require.NoError(t, err)
	bc, err := Combine(docB(), c)
	require.NoError(t, err)
	right, err := Combine(docA(), bc)
	require.NoError(t, err)
	assert.Equal(t, flat(left), flat(right))
}

func TestCombine_NCopiesScaleExactly(t *testing.T) {
	t.Parallel()
	const n = 5
	single := docA()
	copies := make([]Tree, n)
	for i := range copies {
		copies[i] = single
	}

	got, err := Combine(copies...)
	require.NoError(t, err)

	assert.Equal(t, len(flat(single)), len(flat(got)))

	yellow, _ := got.Get("drywall", "yellow")
	assert.Equal(t, "50", yellow.(PricedLine).Quantity.String())
	assert.Equal(t, "2500", yellow.(PricedLine).Price.String())
	screws, _ := got.Get("drywall", "accessories", "screws")
	assert.Equal(t, "10", screws.(PricedLine).Quantity.String())
	assert.Equal(t, "300", screws.(PricedLine).Price.String())
	misc, _ := got.Get("misc")
	assert.Equal(t, "50", misc.(Numeric).Value.String())

	total, _ := got.Total()
	assert.True(t, total.Equal(Rollup(single).Mul(d(n))))
}

func TestCombine_TotalsRecomputedNotSummed(t *testing.T) {
	t.Parallel()
	stale := Tree{
		"drywall": Tree{
			"yellow": priced(10, 50, quantity.UnitSheet, ""),
			TotalKey: Num(1_000_000),
		},
		TotalKey: Num(42),
	}

	got, err := Combine(stale, stale)
	require.NoError(t, err)

	drywall, _ := got["drywall"].(Tree).Total()
	assert.Equal(t, "1000", drywall.String())
	root, _ := got.Total()
	assert.Equal(t, "1000", root.String())
}

func TestCombine_KeysMissingInSomeDocuments(t *testing.T) {
	t.Parallel()
	got, err := Combine(docA(), docB())
	require.NoError(t, err)

	_, hasSealing := got.Get("sealing", "roof")
	_, hasHardware := got.Get("hardware", "doors")
	assert.True(t, hasSealing)
	assert.True(t, hasHardware)

	yellow, _ := got.Get("drywall", "yellow")
	line := yellow.(PricedLine)
	assert.Equal(t, "17", line.Quantity.String())
	assert.Equal(t, "885", line.Price.String())
	// Different unit prices fall back to the effective rate.
	assert.True(t, line.UnitPrice.Equal(d(885).Div(d(17))))
	assert.Equal(t, "outer walls", line.Notes)
}

func TestCombine_ShapeMismatch(t *testing.T) {
	t.Parallel()
	a := Tree{"drywall": Tree{"yellow": priced(1, 1, quantity.UnitSheet, "")}}
	b := Tree{"drywall": Tree{"yellow": Tree{"sheets": priced(1, 1, quantity.UnitSheet, "")}}}

	_, err := Combine(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrShapeMismatch))

	var pe *model.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"drywall", "yellow"}, pe.Path)
	assert.Contains(t, err.Error(), "drywall.yellow")
}

func TestCombine_ShapeMismatchMeasuredVsPriced(t *testing.T) {
	t.Parallel()
	a := Tree{"floors": Tree{"tiles": measured(10, quantity.UnitEach, 3.6, "")}}
	b := Tree{"floors": Tree{"tiles": priced(10, 2, quantity.UnitEach, "")}}

	_, err := Combine(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrShapeMismatch))
	assert.Contains(t, err.Error(), "floors.tiles")
}

func TestCombine_UnitMismatch(t *testing.T) {
	t.Parallel()
	a := Tree{"drywall": Tree{"accessories": Tree{"tape": measured(2, quantity.UnitRoll, 150, "")}}}
	b := Tree{"drywall": Tree{"accessories": Tree{"tape": measured(150, quantity.UnitMeter, 150, "")}}}

	_, err := Combine(a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnitMismatch))

	var pe *model.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "drywall.accessories.tape", model.JoinPath(pe.Path))
}

func TestCombine_MeasuredSumsSourceMetric(t *testing.T) {
	t.Parallel()
	a := Tree{"drywall": Tree{"yellow": measured(27, quantity.UnitSheet, 100, "outer walls")}}
	b := Tree{"drywall": Tree{"yellow": measured(14, quantity.UnitSheet, 50, "outer walls")}}

	got, err := Combine(a, b)
	require.NoError(t, err)
	yellow, _ := got.Get("drywall", "yellow")
	m := yellow.(Measured)
	assert.Equal(t, "41", m.Quantity.String())
	assert.Equal(t, "150", m.SourceMetric.String())
}

func TestCombine_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()
	a := docA()
	before := flat(a)

	_, err := Combine(a, a, docB())
	require.NoError(t, err)
	assert.Equal(t, before, flat(a))
}

func TestCombine_Empty(t *testing.T) {
	t.Parallel()
	got, err := Combine()
	require.NoError(t, err)
	total, ok := got.Total()
	require.True(t, ok)
	assert.True(t, total.IsZero())
}

func TestMergeNotes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a", mergeNotes("a", "a"))
	assert.Equal(t, "b", mergeNotes("", "b"))
	assert.Equal(t, "a", mergeNotes("a", ""))
	assert.Equal(t, mergeNotes("x", "y"), mergeNotes("y", "x"))
}

func TestCombine_DivergingNotesIndependentOfOrder(t *testing.T) {
	t.Parallel()
	first := Tree{"sealing": Tree{"roof": priced(40, 35, quantity.UnitSqm, "roof membrane")}}
	second := Tree{"sealing": Tree{"roof": priced(10, 45, quantity.UnitSqm, "bitumen sheet")}}

	ab, err := Combine(first, second)
	require.NoError(t, err)
	ba, err := Combine(second, first)
	require.NoError(t, err)
	assert.Equal(t, flat(ab), flat(ba))

	roof, ok := ab.Get("sealing", "roof")
	require.True(t, ok)
	line := roof.(PricedLine)
	assert.Equal(t, "bitumen sheet", line.Notes)
	assert.Equal(t, "50", line.Quantity.String())
	assert.Equal(t, "1850", line.Price.String())
	assert.Equal(t, "37", line.UnitPrice.String())
}
