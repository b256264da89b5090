package common

import (
	"math"

	"github.com/gogpu/gg"
)

const (
	BaseWidth  = 1280
	BaseHeight = 800
	// HUDHeight is the strip reserved for the toolbar at the top.
	HUDHeight = 48
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FitView returns the transform that scales a paper of pw x ph to fit
// inside the w x h viewport, centred, without scaling above maxScale.
func FitView(pw, ph, w, h, maxScale float64) gg.Matrix {
	if pw <= 0 || ph <= 0 || w <= 0 || h <= 0 {
		return gg.Identity()
	}
	s := math.Min(w/pw, h/ph)
	if maxScale > 0 {
		s = math.Min(s, maxScale)
	}
	ox := Lerp(0, w-pw*s, 0.5)
	oy := Lerp(0, h-ph*s, 0.5)
	return gg.Translate(ox, oy).Multiply(gg.Scale(s, s))
}
