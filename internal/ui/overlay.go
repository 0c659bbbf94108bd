//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"surface-grid/internal/render"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// faceProvider is implemented by simulations that can report which cube
// face covers a location, enabling the seam overlay.
type faceProvider interface {
	FaceAt(ll s2.LatLng) (int, bool)
}

// Overlay draws optional diagnostic layers on top of the projected
// view: a graticule and, for cube-backed simulations, the face seams.
type Overlay struct {
	width, height int

	showGraticule bool
	showSeams     bool

	graticule *ebiten.Image
	seams     *ebiten.Image
}

// NewOverlay constructs an overlay for a view of the given pixel size.
func NewOverlay(width, height int) *Overlay {
	return &Overlay{width: width, height: height}
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showGraticule = !o.showGraticule
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showSeams = !o.showSeams
	}
}

// Draw renders the enabled layers onto the provided screen. The layers
// depend only on the view geometry, so each is rasterized once and
// cached.
func (o *Overlay) Draw(screen *ebiten.Image, sim any) {
	if o.showGraticule {
		if o.graticule == nil {
			o.graticule = o.rasterize(graticuleSample)
		}
		screen.DrawImage(o.graticule, nil)
	}
	if o.showSeams {
		if provider, ok := sim.(faceProvider); ok {
			if o.seams == nil {
				o.seams = o.rasterize(o.seamSample(provider))
			}
			screen.DrawImage(o.seams, nil)
		}
	}
}

func (o *Overlay) rasterize(sample func(s2.LatLng) color.RGBA) *ebiten.Image {
	buf := make([]byte, o.width*o.height*4)
	render.Equirect(buf, o.width, o.height, sample)
	img := ebiten.NewImage(o.width, o.height)
	img.WritePixels(buf)
	return img
}

// graticuleSample marks latitude lines every 30 degrees and longitude
// lines every 45 degrees.
func graticuleSample(ll s2.LatLng) color.RGBA {
	const line = 0.005
	lat, lng := ll.Lat.Radians(), ll.Lng.Radians()
	if nearMultiple(lat, math.Pi/6, line) || nearMultiple(lng, math.Pi/4, line) {
		return color.RGBA{R: 255, G: 255, B: 255, A: 96}
	}
	return color.RGBA{}
}

// seamSample marks locations where the covering face changes within
// one pixel step east or south.
func (o *Overlay) seamSample(provider faceProvider) func(s2.LatLng) color.RGBA {
	dLng := s1.Angle(2 * math.Pi / float64(o.width))
	dLat := s1.Angle(math.Pi / float64(o.height))
	return func(ll s2.LatLng) color.RGBA {
		here, ok := provider.FaceAt(ll)
		if !ok {
			return color.RGBA{}
		}
		east := s2.LatLng{Lat: ll.Lat, Lng: wrapLng(ll.Lng + dLng)}
		south := s2.LatLng{Lat: max(ll.Lat-dLat, s1.Angle(-math.Pi/2)), Lng: ll.Lng}
		if f, ok := provider.FaceAt(east); ok && f != here {
			return color.RGBA{R: 255, G: 120, B: 40, A: 200}
		}
		if f, ok := provider.FaceAt(south); ok && f != here {
			return color.RGBA{R: 255, G: 120, B: 40, A: 200}
		}
		return color.RGBA{}
	}
}

func nearMultiple(v, step, tolerance float64) bool {
	_, frac := math.Modf(v / step)
	return math.Abs(frac) < tolerance || math.Abs(frac) > 1-tolerance
}

func wrapLng(lng s1.Angle) s1.Angle {
	if lng > math.Pi {
		return lng - 2*math.Pi
	}
	return lng
}
