package datastructure_test

import (
	"lintang/postmanx/pkg/datastructure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphID(t *testing.T) {

	t.Run("pack and unpack fields", func(t *testing.T) {
		id := datastructure.NewGraphID(756425, 2, 123456789)
		assert.Equal(t, uint32(756425), id.TileID())
		assert.Equal(t, uint8(2), id.Level())
		assert.Equal(t, uint64(123456789), id.Index())
		assert.True(t, id.IsValid())
	})

	t.Run("max field values", func(t *testing.T) {
		id := datastructure.NewGraphID(1<<24-1, 7, 1<<37-1)
		assert.Equal(t, uint32(1<<24-1), id.TileID())
		assert.Equal(t, uint8(7), id.Level())
		assert.Equal(t, uint64(1<<37-1), id.Index())
	})

	t.Run("invalid id", func(t *testing.T) {
		assert.False(t, datastructure.InvalidGraphID.IsValid())
	})

	t.Run("usable as map key", func(t *testing.T) {
		m := map[datastructure.GraphID]int{}
		a := datastructure.NewGraphID(1, 0, 10)
		b := datastructure.NewGraphID(1, 0, 10)
		m[a]++
		m[b]++
		assert.Len(t, m, 1)
		assert.Equal(t, 2, m[a])
	})
}
