package collision

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const bevelEpsilon = 1e-3

// addBevelPlanes returns the brush's planes extended with synthetic
// axis-aligned planes at the brush AABB. Box sweeps treat the moving box as
// a point against planes pushed out by the box extent; without axial bevels
// that reduction is unsound wherever the box straddles a sharp brush edge,
// and players catch or jitter on room corners.
func addBevelPlanes(def BrushDef) []Plane {
	planes := make([]Plane, len(def.Planes), len(def.Planes)+6)
	copy(planes, def.Planes)

	axial := [6]Plane{
		{Normal: mgl32.Vec3{1, 0, 0}, Dist: def.Maxs.X()},
		{Normal: mgl32.Vec3{-1, 0, 0}, Dist: -def.Mins.X()},
		{Normal: mgl32.Vec3{0, 1, 0}, Dist: def.Maxs.Y()},
		{Normal: mgl32.Vec3{0, -1, 0}, Dist: -def.Mins.Y()},
		{Normal: mgl32.Vec3{0, 0, 1}, Dist: def.Maxs.Z()},
		{Normal: mgl32.Vec3{0, 0, -1}, Dist: -def.Mins.Z()},
	}

	for _, bevel := range axial {
		if !hasPlane(planes, bevel) {
			planes = append(planes, bevel)
		}
	}
	return planes
}

func hasPlane(planes []Plane, p Plane) bool {
	for _, existing := range planes {
		if planesEqual(existing, p) {
			return true
		}
	}
	return false
}

func planesEqual(a, b Plane) bool {
	return math32.Abs(a.Dist-b.Dist) <= bevelEpsilon &&
		math32.Abs(a.Normal.X()-b.Normal.X()) <= bevelEpsilon &&
		math32.Abs(a.Normal.Y()-b.Normal.Y()) <= bevelEpsilon &&
		math32.Abs(a.Normal.Z()-b.Normal.Z()) <= bevelEpsilon
}
