package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/assert"
	"github.com/qkarena/qk/collision"
	"github.com/qkarena/qk/game"
)

// Simulator advances player movement one fixed tick at a time. It holds no
// per-player state; the same Simulator serves every player against the same
// world, and identical (state, command) pairs produce bit-identical results
// on server and client.
//
// The math here deliberately sticks to plain scalar float32 expressions with
// intermediate variables. Do not fold multiply-adds into single expressions:
// the compiler may fuse those into FMA on some targets and server and client
// builds must agree bit for bit.
type Simulator struct {
	World *collision.World
	Debug *DebugTrace
}

// Simulate runs one fixed tick of the movement pipeline on state.
func (s *Simulator) Simulate(st *MovementState, cmd game.UserCommand) {
	assert.IsTrue(s.World != nil, "physics: simulate with nil world")
	assert.IsTrue(st != nil, "physics: simulate with nil state")

	// Command integration. CommandTime must advance strictly even when a
	// hostile client repeats or rewinds timestamps.
	if cmd.ServerTime > st.CommandTime {
		st.CommandTime = cmd.ServerTime
	} else {
		st.CommandTime++
	}
	st.Pitch = cmd.Pitch
	st.Yaw = game.WrapYaw(cmd.Yaw)

	s.probeGround(st)
	s.attemptJump(st, cmd)
	s.applyFriction(st)

	wishdir, wishspeed := wishDirection(st, cmd)
	accelerate(st, wishdir, wishspeed)
	if !st.OnGround {
		airControl(st, cmd, wishdir)
		st.Velocity[2] -= Gravity * game.TickDT
	}

	s.stepSlideMove(st, game.TickDT)

	if st.SkimTicks > 0 {
		st.SkimTicks--
	}
	if st.SplashSlickTicks > 0 {
		st.SplashSlickTicks--
	}
	if st.AutohopCooldown > 0 {
		st.AutohopCooldown--
	}
	st.JumpHeld = cmd.Pressed(game.ButtonJump)
}

// probeGround sweeps a tiny step downward to decide whether the player is
// standing on walkable ground this tick.
func (s *Simulator) probeGround(st *MovementState) {
	probe := st.Origin.Sub(mgl32.Vec3{0, 0, GroundProbeDist})
	tr := s.World.Trace(st.Origin, probe, st.Mins, st.Maxs)

	st.OnGround = tr.Fraction < 1 &&
		tr.Normal.Z() >= MinWalkNormalZ &&
		st.Velocity.Z() <= 0

	if st.OnGround {
		st.GroundNormal = tr.Normal
	}
	// When the player leaves the ground without jumping the previous
	// GroundNormal is intentionally left in place for one tick so slick
	// slope handling still sees it.
}

func (s *Simulator) attemptJump(st *MovementState, cmd game.UserCommand) {
	if !cmd.Pressed(game.ButtonJump) || st.JumpHeld {
		return
	}
	if !st.OnGround || st.AutohopCooldown != 0 {
		return
	}

	st.Velocity[2] = math32.Max(st.Velocity[2], JumpVelocity)
	st.OnGround = false
	st.LastJumpTime = st.CommandTime
	st.AutohopCooldown = 1
}

func (s *Simulator) applyFriction(st *MovementState) {
	if !st.OnGround || st.SkimTicks > 0 || st.SplashSlickTicks > 0 {
		return
	}

	speed := st.HorizontalSpeed()
	if speed <= 0 {
		return
	}

	control := speed
	if speed < StopSpeed {
		control = StopSpeed
	}
	drop := control * Friction * game.TickDT

	newSpeed := speed - drop
	if newSpeed < 0 {
		newSpeed = 0
	}
	scale := newSpeed / speed
	st.Velocity[0] *= scale
	st.Velocity[1] *= scale
}

// wishDirection builds the unit direction the player wants to move in from
// the command and yaw only; pitch never bleeds into horizontal movement.
func wishDirection(st *MovementState, cmd game.UserCommand) (mgl32.Vec3, float32) {
	forward, right := game.YawVectors(st.Yaw)

	wish := forward.Mul(cmd.ForwardMove * MaxSpeed)
	wish = wish.Add(right.Mul(cmd.SideMove * MaxSpeed))
	wish[2] = 0

	wishspeed := wish.Len()
	if wishspeed <= 0 {
		return mgl32.Vec3{}, 0
	}
	if wishspeed > MaxSpeed {
		wishspeed = MaxSpeed
	}
	return wish.Normalize(), wishspeed
}

func accelerate(st *MovementState, wishdir mgl32.Vec3, wishspeed float32) {
	if wishspeed <= 0 {
		return
	}

	accel := AccelAir
	if st.OnGround {
		accel = AccelGround
	}

	current := st.Velocity.Dot(wishdir)
	add := wishspeed - current
	if add <= 0 {
		return
	}

	accelSpeed := accel * wishspeed * game.TickDT
	if accelSpeed > add {
		accelSpeed = add
	}
	st.Velocity = st.Velocity.Add(wishdir.Mul(accelSpeed))
}

// airControl rotates horizontal velocity toward the wish direction while
// preserving horizontal speed. Only pure forward input steers; any strafe
// component disables it, which is what makes circle jumps work.
func airControl(st *MovementState, cmd game.UserCommand, wishdir mgl32.Vec3) {
	if cmd.ForwardMove == 0 || cmd.SideMove != 0 {
		return
	}
	if wishdir == (mgl32.Vec3{}) {
		return
	}

	zSpeed := st.Velocity[2]
	vel := st.Velocity
	vel[2] = 0

	speed := vel.Len()
	if speed < 1e-3 {
		return
	}
	vel = vel.Mul(1 / speed)

	dot := vel.Dot(wishdir)
	if dot > 0 {
		k := 32 * AirControl * dot * dot * game.TickDT * math32.Abs(cmd.ForwardMove)
		vel = vel.Mul(speed).Add(wishdir.Mul(k))
		vel = vel.Normalize()
	}

	vel = vel.Mul(speed)
	vel[2] = zSpeed
	st.Velocity = vel
}
