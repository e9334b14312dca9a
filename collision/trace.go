package collision

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/assert"
)

// clipEpsilon keeps a traced box a hair in front of the surface it hit so
// the next trace does not start exactly on (or inside of) the plane.
const clipEpsilon = float32(0.125)

// Result describes the earliest intersection of a swept AABB.
type Result struct {
	// Fraction of the sweep completed before the hit, 1 if nothing was hit.
	Fraction float32
	EndPos   mgl32.Vec3

	// Clipping plane of the earliest hit. Zero when Fraction == 1.
	Normal mgl32.Vec3
	Dist   float32

	// StartSolid is set when the sweep begins intersecting a brush;
	// AllSolid when it also never exits one.
	StartSolid bool
	AllSolid   bool

	BrushIndex int
}

// Hit reports whether the sweep was cut short by geometry.
func (r Result) Hit() bool {
	return r.Fraction < 1
}

// Trace sweeps an AABB (mins/maxs half-extents around the origin point)
// from start to end and returns the earliest intersection. A zero-extent box
// gives a ray trace; start == end gives a point contents test.
func (w *World) Trace(start, end, mins, maxs mgl32.Vec3) Result {
	assert.IsTrue(w != nil, "collision: trace on nil world")

	tr := Result{Fraction: 1, EndPos: end, BrushIndex: -1}

	sweep := sweptBounds(start, end, mins, maxs)
	for i := range w.brushes {
		b := &w.brushes[i]
		if !b.bounds.IntersectsWith(sweep) {
			continue
		}
		clipBoxToBrush(&tr, b, i, start, end, mins, maxs)
		if tr.AllSolid {
			break
		}
	}

	if tr.Fraction < 1 {
		tr.EndPos = start.Add(end.Sub(start).Mul(tr.Fraction))
	}
	return tr
}

// clipBoxToBrush computes the enter/leave fractions of the sweep across one
// brush and folds the earliest enter into tr.
func clipBoxToBrush(tr *Result, b *brush, brushIndex int, start, end, mins, maxs mgl32.Vec3) {
	enterFrac := float32(-1)
	leaveFrac := float32(1)
	var clip Plane
	haveClip := false

	startOut := false
	getOut := false

	for _, pl := range b.planes {
		// Push the plane out by the box support point along its normal,
		// reducing the moving box to a point (Minkowski sum).
		dist := pl.Dist - pl.Normal.Dot(supportOffset(pl.Normal, mins, maxs))

		d1 := pl.Normal.Dot(start) - dist
		d2 := pl.Normal.Dot(end) - dist

		if d2 > 0 {
			getOut = true
		}
		if d1 > 0 {
			startOut = true
		}

		// Entirely in front of this plane: the brush cannot be hit.
		if d1 > 0 && d2 >= d1 {
			return
		}
		if d1 <= 0 && d2 <= 0 {
			continue
		}

		if d1 > d2 {
			// Crossing into the half-space.
			f := (d1 - clipEpsilon) / (d1 - d2)
			if f > enterFrac || (haveClip && nearlyEqual(f, enterFrac) && floorPreferred(pl, clip)) {
				enterFrac = f
				clip = pl
				haveClip = true
			}
		} else {
			// Crossing out.
			f := (d1 + clipEpsilon) / (d1 - d2)
			if f < leaveFrac {
				leaveFrac = f
			}
		}
	}

	if !startOut {
		tr.StartSolid = true
		if !getOut {
			tr.AllSolid = true
			tr.Fraction = 0
			tr.BrushIndex = brushIndex
		}
		return
	}

	if haveClip && enterFrac < leaveFrac && enterFrac < tr.Fraction {
		if enterFrac < 0 {
			enterFrac = 0
		}
		tr.Fraction = enterFrac
		tr.Normal = clip.Normal
		tr.Dist = clip.Dist
		tr.BrushIndex = brushIndex
	}
}

// floorPreferred breaks ties between coincident clip planes in favor of the
// one whose normal is nearest vertical. Landing on the bevelled rim of a
// floor brush must report the floor plane, or ground detection flickers.
func floorPreferred(candidate, current Plane) bool {
	return math32.Abs(candidate.Normal.Z()) > math32.Abs(current.Normal.Z())
}

func nearlyEqual(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// supportOffset picks the box corner furthest behind the plane normal.
func supportOffset(normal, mins, maxs mgl32.Vec3) mgl32.Vec3 {
	var ofs mgl32.Vec3
	for i := 0; i < 3; i++ {
		if normal[i] < 0 {
			ofs[i] = maxs[i]
		} else {
			ofs[i] = mins[i]
		}
	}
	return ofs
}

func sweptBounds(start, end, mins, maxs mgl32.Vec3) cube.BBox {
	lo := mgl32.Vec3{
		math32.Min(start.X(), end.X()) + mins.X(),
		math32.Min(start.Y(), end.Y()) + mins.Y(),
		math32.Min(start.Z(), end.Z()) + mins.Z(),
	}
	hi := mgl32.Vec3{
		math32.Max(start.X(), end.X()) + maxs.X(),
		math32.Max(start.Y(), end.Y()) + maxs.Y(),
		math32.Max(start.Z(), end.Z()) + maxs.Z(),
	}
	return cube.Box(lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z()).Grow(1)
}
