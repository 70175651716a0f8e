// Package icon draws the standby app icon: a white speaker with two sound
// waves on a teal disc. Everything is computed per pixel so any size
// renders crisply without bundled assets.
package icon

import (
	"image"
	"image/color"
	"math"
)

var (
	teal  = color.NRGBA{R: 0x1F, G: 0x8A, B: 0x8A, A: 0xFF}
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Draw renders the icon into a size×size image with a transparent
// background outside the disc.
func Draw(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	for y := range size {
		for x := range size {
			// Normalised pixel centre in [-1, 1].
			u := (float64(x)+0.5)/s*2 - 1
			v := (float64(y)+0.5)/s*2 - 1

			disc := coverage(1-math.Hypot(u, v), s)
			if disc == 0 {
				continue
			}
			c := teal
			if inSpeaker(u, v) || inWave(u, v, 0.42, 0.08) || inWave(u, v, 0.66, 0.08) {
				c = white
			}
			c.A = uint8(float64(c.A) * disc)
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// coverage turns a signed distance (positive inside, in normalised units)
// into an alpha factor with a one-pixel soft edge.
func coverage(dist, size float64) float64 {
	px := dist * size / 2
	switch {
	case px >= 0.5:
		return 1
	case px <= -0.5:
		return 0
	default:
		return px + 0.5
	}
}

// inSpeaker reports whether (u, v) is inside the magnet box or the cone.
func inSpeaker(u, v float64) bool {
	// Magnet: small rectangle on the left.
	if u >= -0.55 && u <= -0.3 && math.Abs(v) <= 0.18 {
		return true
	}
	// Cone: widens linearly from the magnet to u = 0.05.
	if u >= -0.3 && u <= 0.05 {
		half := 0.18 + (u+0.3)/0.35*0.27
		return math.Abs(v) <= half
	}
	return false
}

// inWave reports whether (u, v) lies on an arc of the given radius and
// thickness centred on the cone mouth, limited to ±45°.
func inWave(u, v, radius, thickness float64) bool {
	du := u - 0.05
	if du <= 0 {
		return false
	}
	r := math.Hypot(du, v)
	if math.Abs(r-radius) > thickness/2 {
		return false
	}
	return math.Abs(v) <= du
}
