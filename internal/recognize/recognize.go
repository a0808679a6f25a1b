// Package recognize derives building elements from a drawing descriptor.
package recognize

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// ErrUnrecognizable is returned when a drawing cannot yield elements.
var ErrUnrecognizable = eris.New("recognize: unrecognizable drawing")

// Recognizer turns one drawing into its element set. Implementations
// return a complete result or an error, never a partial set.
type Recognizer interface {
	Recognize(ctx context.Context, bp model.Blueprint) (model.ElementSet, error)
}

// Func adapts a plain function to Recognizer.
type Func func(ctx context.Context, bp model.Blueprint) (model.ElementSet, error)

// Recognize calls f.
func (f Func) Recognize(ctx context.Context, bp model.Blueprint) (model.ElementSet, error) {
	return f(ctx, bp)
}
