package physics

import "github.com/go-gl/mathgl/mgl32"

// Movement constants. These are wire-visible in the sense that any client
// simulating with different values will mispredict every tick, so they are
// never configurable.
const (
	Gravity   = float32(800)
	MaxSpeed  = float32(320)
	StopSpeed = float32(100)
	Friction  = float32(6)

	AccelGround = float32(10)
	AccelAir    = float32(1)
	AirControl  = float32(150)

	JumpVelocity = float32(270)
	StepHeight   = float32(18)

	// Overclip pushes clipped velocity slightly off contact planes so the
	// next trace does not immediately re-hit the same plane.
	Overclip = float32(1.001)

	// MinWalkNormalZ is the steepest plane that still counts as ground.
	MinWalkNormalZ = float32(0.7)

	// GroundProbeDist is the tiny downward sweep used to detect ground.
	GroundProbeDist = float32(0.25)

	EyeHeight = float32(26)

	MaxSlideBumps     = 4
	MaxClipPlanes     = 5
	JumppadApexMargin = float32(32)

	// SplashSlickTicksOnHit is how long friction stays suppressed after an
	// explosion imparts velocity, so the knockback is not drained on the
	// first grounded tick.
	SplashSlickTicksOnHit = 8
	SplashSlickTicksOnPad = 3
)

// Default player hull. Origin sits at the waist: feet 24 below, head 32
// above, eye at +26.
var (
	PlayerMins = mgl32.Vec3{-15, -15, -24}
	PlayerMaxs = mgl32.Vec3{15, 15, 32}
)
