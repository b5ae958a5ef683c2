package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaCatalogue(t *testing.T) {
	assert.True(t, CentralHall.Valid())
	assert.True(t, Watchtower.Valid())
	assert.False(t, AreaID("basement").Valid())

	assert.Equal(t, "The Library", Library.Name())
	assert.Equal(t, "basement", AreaID("basement").Name())

	a, ok := LookupArea(Forge)
	assert.True(t, ok)
	assert.Equal(t, "forge-entrance", a.DefaultViewpoint)

	all := Areas()
	all[0].Name = "mutated"
	assert.Equal(t, "Central Hall", CentralHall.Name(), "Areas must return a copy")
}

func TestBreadcrumb(t *testing.T) {
	assert.Equal(t, "Central Hall / West Wing", Breadcrumb(CentralHall, "hall-west"))
	assert.Equal(t, "Library / Reading Area", Breadcrumb(Library, "library-center"))
	assert.Equal(t, "Forge", Breadcrumb(Forge, "forge-anvil"))
	assert.Equal(t, "Observatory", Breadcrumb(Observatory, ""))
}

func TestLerpEndpointsAreExact(t *testing.T) {
	a := Vec3{0.1, 0.2, 0.3}
	b := Vec3{-7.7, 3.3, 12.9}
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, -3.8, mid.X, 1e-12)
	assert.InDelta(t, 1.75, mid.Y, 1e-12)
	assert.InDelta(t, 6.6, mid.Z, 1e-12)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1.0, Vec3{3, 4, 12}.Normalize().Len(), 1e-12)
}
