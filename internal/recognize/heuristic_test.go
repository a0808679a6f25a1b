package recognize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/takeoff-cli/internal/model"
)

func TestHeuristic_Defaults(t *testing.T) {
	t.Parallel()
	h := NewHeuristic(DefaultAssumptions())

	es, err := h.Recognize(context.Background(), model.Blueprint{Name: "ground floor"})
	require.NoError(t, err)

	assert.InDelta(t, 158.72, es.Outline.Area, 1e-9)
	assert.InDelta(t, 50.4, es.Outline.Perimeter, 1e-9)
	assert.InDelta(t, 141.12, es.Walls.Outer.TotalArea, 1e-9)
	assert.InDelta(t, 40.32, es.Walls.Inner.TotalLength, 1e-9)
	assert.InDelta(t, 7.56, es.Walls.Bathroom.TotalLength, 1e-9)
	assert.InDelta(t, 142.848, es.Floors.Indoor.TotalArea, 1e-9)
	assert.InDelta(t, 15.872, es.Floors.Bathroom.TotalArea, 1e-9)
	assert.InDelta(t, 31.744, es.Floors.Outdoor.TotalArea, 1e-9)
	assert.InDelta(t, 158.72, es.Ceilings.TotalArea, 1e-9)
	assert.InDelta(t, 158.72, es.Roofs.TotalArea, 1e-9)

	assert.Equal(t, 10, es.Openings.Windows.Count)
	assert.Equal(t, 8, es.Openings.Doors.Count)
	assert.Equal(t, 2, es.SpecialRooms.Bathroom.Count)
	assert.Equal(t, 14, es.Stairs.Steps)
	assert.InDelta(t, 65.0, es.Concrete.Total(), 1e-9)
}

func TestHeuristic_DescriptorDimensions(t *testing.T) {
	t.Parallel()
	h := NewHeuristic(DefaultAssumptions())

	es, err := h.Recognize(context.Background(), model.Blueprint{
		Name:            "annex",
		Width:           10,
		Length:          8,
		Height:          3,
		IndoorFloorArea: 70,
	})
	require.NoError(t, err)

	assert.InDelta(t, 80.0, es.Outline.Area, 1e-9)
	assert.InDelta(t, 36.0, es.Outline.Perimeter, 1e-9)
	assert.InDelta(t, 108.0, es.Walls.Outer.TotalArea, 1e-9)
	assert.InDelta(t, 63.0, es.Floors.Indoor.TotalArea, 1e-9)
	assert.InDelta(t, 7.0, es.Floors.Bathroom.TotalArea, 1e-9)
}

func TestHeuristic_PreRecognizedElementsWin(t *testing.T) {
	t.Parallel()
	h := NewHeuristic(DefaultAssumptions())
	given := model.ElementSet{Walls: model.WallSet{Outer: model.Surface{TotalArea: 100}}}

	es, err := h.Recognize(context.Background(), model.Blueprint{Width: 50, Elements: &given})
	require.NoError(t, err)
	assert.Equal(t, given, es)
}

func TestHeuristic_InvalidDimensions(t *testing.T) {
	t.Parallel()
	h := NewHeuristic(DefaultAssumptions())

	_, err := h.Recognize(context.Background(), model.Blueprint{Name: "bad", Width: -3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnrecognizable))
	assert.Contains(t, err.Error(), "bad")
}

func TestHeuristic_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHeuristic(DefaultAssumptions()).Recognize(ctx, model.Blueprint{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFunc(t *testing.T) {
	t.Parallel()
	var r Recognizer = Func(func(context.Context, model.Blueprint) (model.ElementSet, error) {
		return model.ElementSet{Stairs: model.Stairs{Count: 3}}, nil
	})
	es, err := r.Recognize(context.Background(), model.Blueprint{})
	require.NoError(t, err)
	assert.Equal(t, 3, es.Stairs.Count)
}
