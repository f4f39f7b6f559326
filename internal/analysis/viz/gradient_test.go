package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForSpeedZeroIsFirstStop(t *testing.T) {
	for _, max := range []float64{0.5, 1, 12.3, 300} {
		assert.Equal(t, SpeedGradient[0].Color, ColorForSpeed(0, max))
	}
}

func TestColorForSpeedMaxKeepsHeadroom(t *testing.T) {
	first := SpeedGradient[0].Color
	last := SpeedGradient[len(SpeedGradient)-1].Color

	for _, max := range []float64{1, 7.7, 33.3} {
		c := ColorForSpeed(max, max)
		assert.NotEqual(t, first, c)
		assert.NotEqual(t, last, c)
	}
}

func TestColorForSpeedAtHeadroomIsLastStop(t *testing.T) {
	last := SpeedGradient[len(SpeedGradient)-1].Color
	for _, max := range []float64{1, 7.7, 33.3} {
		assert.Equal(t, last, ColorForSpeed(max*SpeedHeadroom, max))
		assert.Equal(t, last, ColorForSpeed(max*5, max))
	}
}

func TestColorForSpeedNonPositiveMax(t *testing.T) {
	assert.Equal(t, SpeedGradient[0].Color, ColorForSpeed(10, 0))
	assert.Equal(t, SpeedGradient[0].Color, ColorForSpeed(10, -1))
}

func TestColorForSpeedNegativeSpeedClamps(t *testing.T) {
	assert.Equal(t, SpeedGradient[0].Color, ColorForSpeed(-4, 10))
}

func TestColorAtInterpolates(t *testing.T) {
	stops := []ColorStop{
		{Position: 0, Color: RGB{R: 0, G: 100, B: 200}},
		{Position: 1, Color: RGB{R: 200, G: 100, B: 0}},
	}
	assert.Equal(t, RGB{R: 100, G: 100, B: 100}, colorAt(stops, 0.5))
	assert.Equal(t, RGB{R: 50, G: 100, B: 150}, colorAt(stops, 0.25))
	assert.Equal(t, stops[1].Color, colorAt(stops, 1.5))
}

func TestColorAtHitsInnerStopsExactly(t *testing.T) {
	for _, stop := range SpeedGradient {
		assert.Equal(t, stop.Color, colorAt(SpeedGradient, stop.Position))
	}
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#22c55e", SpeedGradient[0].Color.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
	assert.Equal(t, "#ff0a01", RGB{R: 255, G: 10, B: 1}.Hex())
}
