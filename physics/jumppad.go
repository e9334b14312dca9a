package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/game"
)

// JumppadVelocity returns the launch velocity that carries a player from
// start to target under gravity, on the arc whose apex clears the target by
// JumppadApexMargin. The target must be strictly above the start; pads that
// point downward are rejected at map load.
func JumppadVelocity(start, target mgl32.Vec3) mgl32.Vec3 {
	delta := target.Sub(start)
	rise := delta.Z()
	if rise <= 0 {
		return mgl32.Vec3{}
	}

	apex := rise + JumppadApexMargin
	vertical := math32.Sqrt(2 * Gravity * apex)

	run := game.Vec3HzLen(delta)
	if run <= 0 {
		return mgl32.Vec3{0, 0, vertical}
	}
	horizontal := math32.Sqrt(Gravity * run * run / (2 * rise))

	dir := mgl32.Vec3{delta.X() / run, delta.Y() / run, 0}
	vel := dir.Mul(horizontal)
	vel[2] = vertical
	return vel
}
