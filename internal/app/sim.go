package app

import (
	"image/color"

	"github.com/golang/geo/s2"
)

// Sim defines the minimal contract a sphere simulation must implement
// to be displayed by the viewer.
type Sim interface {
	Name() string
	Reset(seed int64)
	Step()
	Sample(ll s2.LatLng) color.RGBA
}
