package render

import (
	"image/color"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"surface-grid/pkg/surface"
)

// Equirect fills buf with an equirectangular view of a sphere: each
// pixel centre is mapped to its latitude and longitude and sampled.
// buf holds width*height RGBA pixels in row-major order, north at the
// top and longitude -pi at the left edge. Rows are sampled from the
// worker pool, so sample must be safe for concurrent use.
func Equirect(buf []byte, width, height int, sample func(s2.LatLng) color.RGBA) {
	surface.ParallelFor(height, func(lo, hi int) {
		for py := lo; py < hi; py++ {
			lat := math.Pi/2 - (float64(py)+0.5)/float64(height)*math.Pi
			for px := 0; px < width; px++ {
				lng := (float64(px)+0.5)/float64(width)*2*math.Pi - math.Pi
				col := sample(s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lng)})
				base := (py*width + px) * 4
				buf[base+0] = col.R
				buf[base+1] = col.G
				buf[base+2] = col.B
				buf[base+3] = col.A
			}
		}
	})
}
