package surface

import "github.com/pkg/errors"

// Sentinel errors for the deterministic input-validation failures of
// the grid contract. All of them are synchronous and recoverable;
// implementations wrap them with coordinate context.
var (
	// ErrInvalidCoordinate reports a point or raw coordinate outside a
	// grid's valid index space.
	ErrInvalidCoordinate = errors.New("surface: invalid coordinate")

	// ErrDimensionMismatch reports inconsistent grid dimensions, either
	// at construction or between the grids of a bulk transform.
	ErrDimensionMismatch = errors.New("surface: dimension mismatch")

	// ErrConversionOutOfRange reports geographic coordinates outside
	// the latitude/longitude domain.
	ErrConversionOutOfRange = errors.New("surface: geographic coordinate out of range")
)
