package collision

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/assert"
)

// Plane is a half-space boundary. Points p with Normal·p <= Dist are inside
// the half-space.
type Plane struct {
	Normal mgl32.Vec3
	Dist   float32
}

// PointDist returns the signed distance of p from the plane. Positive means
// in front (outside the half-space).
func (pl Plane) PointDist(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) - pl.Dist
}

// BrushDef is a convex brush as handed over by the map loader: the bounding
// half-spaces plus the brush AABB. Bevel planes are not expected; the world
// synthesizes them on ingest.
type BrushDef struct {
	Planes []Plane
	Mins   mgl32.Vec3
	Maxs   mgl32.Vec3
}

// BoxBrush returns a BrushDef for an axis-aligned box. Useful for trigger
// hulls and test geometry; map loaders emit arbitrary convex brushes.
func BoxBrush(mins, maxs mgl32.Vec3) BrushDef {
	return BrushDef{
		Planes: []Plane{
			{Normal: mgl32.Vec3{1, 0, 0}, Dist: maxs.X()},
			{Normal: mgl32.Vec3{-1, 0, 0}, Dist: -mins.X()},
			{Normal: mgl32.Vec3{0, 1, 0}, Dist: maxs.Y()},
			{Normal: mgl32.Vec3{0, -1, 0}, Dist: -mins.Y()},
			{Normal: mgl32.Vec3{0, 0, 1}, Dist: maxs.Z()},
			{Normal: mgl32.Vec3{0, 0, -1}, Dist: -mins.Z()},
		},
		Mins: mins,
		Maxs: maxs,
	}
}

// brush is the ingested, bevelled form of a BrushDef.
type brush struct {
	planes []Plane
	bounds cube.BBox
}

// World is the immutable collision model for a loaded map. It is read-only
// after New and safe to trace against from anywhere.
type World struct {
	brushes []brush
}

// New ingests brush definitions into a traceable world. Degenerate brushes
// (fewer than four planes) are skipped.
func New(defs []BrushDef) *World {
	w := &World{brushes: make([]brush, 0, len(defs))}
	for _, def := range defs {
		if len(def.Planes) < 4 {
			continue
		}
		b := brush{
			planes: addBevelPlanes(def),
			bounds: cube.Box(
				def.Mins.X(), def.Mins.Y(), def.Mins.Z(),
				def.Maxs.X(), def.Maxs.Y(), def.Maxs.Z(),
			),
		}
		w.brushes = append(w.brushes, b)
	}
	return w
}

// BrushCount returns the number of traceable brushes in the world.
func (w *World) BrushCount() int {
	assert.IsTrue(w != nil, "collision: nil world")
	return len(w.brushes)
}

// PointSolid reports whether the point is inside any brush.
func (w *World) PointSolid(p mgl32.Vec3) bool {
	tr := w.Trace(p, p, mgl32.Vec3{}, mgl32.Vec3{})
	return tr.StartSolid
}
