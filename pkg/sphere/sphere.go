// Package sphere provides grids wrapped around spheres: an
// equirectangular RectangleGrid and a cube-projected CubeGrid. Both
// satisfy the surface.SphereGrid contract.
package sphere

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"

	"surface-grid/pkg/surface"
)

// checkGeographic validates that ll lies inside the geographic
// interchange domain. A longitude of exactly +pi is accepted and
// treated as -pi, since s2 reports the antimeridian as +pi.
func checkGeographic(ll s2.LatLng) error {
	lat, lng := ll.Lat.Radians(), ll.Lng.Radians()
	if math.IsNaN(lat) || math.IsNaN(lng) ||
		lat < -math.Pi/2 || lat > math.Pi/2 ||
		lng < -math.Pi || lng > math.Pi {
		return errors.Wrapf(surface.ErrConversionOutOfRange, "latitude %v, longitude %v", lat, lng)
	}
	return nil
}
