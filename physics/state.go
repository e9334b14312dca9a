package physics

import "github.com/go-gl/mathgl/mgl32"

// MovementState is the movement portion of a player's state. It is a plain
// value type: prediction rings and snapshots copy it wholesale, and two
// states are comparable for misprediction checks.
type MovementState struct {
	Origin   mgl32.Vec3
	Velocity mgl32.Vec3

	Pitch float32
	Yaw   float32

	Mins mgl32.Vec3
	Maxs mgl32.Vec3

	OnGround     bool
	GroundNormal mgl32.Vec3

	// JumpHeld tracks the jump button across ticks so autohop requires a
	// fresh press per landing.
	JumpHeld        bool
	LastJumpTime    uint32
	AutohopCooldown uint8

	// SkimTicks and SplashSlickTicks suppress ground friction for a few
	// ticks after a jump or an explosion/pad launch.
	SkimTicks        uint8
	SplashSlickTicks uint8

	// TeleportBit is XOR-toggled every teleport so clients can detect a
	// discontinuous relocation in snapshots.
	TeleportBit uint8

	// CommandTime advances strictly monotonically; see Simulator.Simulate.
	CommandTime uint32
}

// NewMovementState returns a state with the default player hull at the
// given origin.
func NewMovementState(origin mgl32.Vec3) MovementState {
	return MovementState{
		Origin: origin,
		Mins:   PlayerMins,
		Maxs:   PlayerMaxs,
	}
}

// EyePos returns the aim origin for weapons fire.
func (s *MovementState) EyePos() mgl32.Vec3 {
	return s.Origin.Add(mgl32.Vec3{0, 0, EyeHeight})
}

// HorizontalSpeed returns the XY speed in units per second.
func (s *MovementState) HorizontalSpeed() float32 {
	v := s.Velocity
	v[2] = 0
	return v.Len()
}
