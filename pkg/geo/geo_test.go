package geo_test

import (
	"testing"

	"lintang/postmanx/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		p := geo.NewLocation(-7.55, 110.79)
		assert.Equal(t, 0.0, geo.HaversineDistance(p, p))
	})

	t.Run("known distance solo to jogja", func(t *testing.T) {
		solo := geo.NewLocation(-7.5755, 110.8243)
		jogja := geo.NewLocation(-7.7956, 110.3695)
		dist := geo.HaversineDistance(solo, jogja)
		assert.InDelta(t, 55.6, dist, 1.0) // km
	})
}

func TestPercentAlong(t *testing.T) {
	a := geo.NewLocation(0, 0)
	b := geo.NewLocation(0, 0.01)

	t.Run("point at segment start", func(t *testing.T) {
		assert.InDelta(t, 0.0, geo.PercentAlong(a, b, a), 0.001)
	})

	t.Run("point near the middle", func(t *testing.T) {
		p := geo.NewLocation(0.0005, 0.005)
		assert.InDelta(t, 0.5, geo.PercentAlong(a, b, p), 0.01)
	})

	t.Run("point past the end is clamped", func(t *testing.T) {
		p := geo.NewLocation(0, 0.02)
		assert.Equal(t, 1.0, geo.PercentAlong(a, b, p))
	})

	t.Run("degenerate segment", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.PercentAlong(a, a, b))
	})
}
