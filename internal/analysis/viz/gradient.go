package viz

import (
	"fmt"
	"image/color"
	"math"
)

// SpeedHeadroom scales the observed maximum so the fastest segment stops short
// of the final gradient stop
const SpeedHeadroom = 1.1

// RGB is an opaque 8-bit color
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA adapts the color to image/color
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// ColorStop is a gradient stop: a position in [0,1] and its color
type ColorStop struct {
	Position float64
	Color    RGB
}

// SpeedGradient runs from green (slow) through yellow and orange to red (fast).
// Positions must be ascending and span [0,1].
var SpeedGradient = []ColorStop{
	{Position: 0, Color: RGB{R: 0x22, G: 0xc5, B: 0x5e}},
	{Position: 0.5, Color: RGB{R: 0xea, G: 0xb3, B: 0x08}},
	{Position: 0.75, Color: RGB{R: 0xf9, G: 0x73, B: 0x16}},
	{Position: 1, Color: RGB{R: 0xef, G: 0x44, B: 0x44}},
}

// ColorForSpeed maps a speed onto SpeedGradient relative to the fastest speed
// observed in the session. A non-positive maximum maps to the slowest color.
func ColorForSpeed(speed, maxObservedSpeed float64) RGB {
	return colorAt(SpeedGradient, normalizeSpeed(speed, maxObservedSpeed))
}

func normalizeSpeed(speed, maxObservedSpeed float64) float64 {
	if maxObservedSpeed <= 0 || math.IsNaN(speed) {
		return 0
	}
	return clamp(speed/(maxObservedSpeed*SpeedHeadroom), 0, 1)
}

// colorAt interpolates the bracketing pair of stops around position
func colorAt(stops []ColorStop, position float64) RGB {
	for i := 0; i < len(stops)-1; i++ {
		lo, hi := stops[i], stops[i+1]
		if position > hi.Position {
			continue
		}
		span := hi.Position - lo.Position
		if span <= 0 {
			return hi.Color
		}
		t := (position - lo.Position) / span
		return RGB{
			R: lerp(lo.Color.R, hi.Color.R, t),
			G: lerp(lo.Color.G, hi.Color.G, t),
			B: lerp(lo.Color.B, hi.Color.B, t),
		}
	}
	return stops[len(stops)-1].Color
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
