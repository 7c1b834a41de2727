package signboard

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkVectorUnit(b *testing.B) {

	b.ReportAllocs()

	vec := Vector3{1, 2, 3}

	for i := 0; i < b.N; i++ {
		vec.Unit()
	}

}

func BenchmarkVectorCross(b *testing.B) {

	b.ReportAllocs()

	a := Vector3{rand.Float32(), rand.Float32(), rand.Float32()}
	c := Vector3{rand.Float32(), rand.Float32(), rand.Float32()}

	for i := 0; i < b.N; i++ {
		a.Cross(c)
	}

}

func TestVectorBasics(t *testing.T) {

	a := Vector3{1, 2, 3}
	b := Vector3{4, 5, 6}

	assert.Equal(t, Vector3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vector3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vector3{-3, 6, -3}, a.Cross(b))
	assert.Equal(t, Vector3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, Vector3{1, 2, 3}, a.Min(b))
	assert.Equal(t, Vector3{4, 5, 6}, a.Max(b))

}

func TestVectorUnit(t *testing.T) {

	for i := 0; i < 100; i++ {
		vec := Vector3{rand.Float32()*200 - 100, rand.Float32()*200 - 100, rand.Float32()*200 - 100}
		if vec.IsZero() {
			continue
		}
		assert.InDelta(t, 1, vec.Unit().Magnitude(), 1e-4)
	}

	assert.True(t, Vector3{}.Unit().IsZero(), "a zero vector stays zero when normalized")

}

func TestVectorAngle(t *testing.T) {
	assert.InDelta(t, 0, WorldUp.Angle(WorldUp), 1e-3)
	assert.InDelta(t, 3.14159, WorldUp.Angle(WorldUp.Invert()), 1e-3)
	assert.InDelta(t, 3.14159/2, WorldUp.Angle(WorldRight), 1e-3)
}
