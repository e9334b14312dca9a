package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/collision"
	"github.com/qkarena/qk/game"
)

func flatWorld() *collision.World {
	return collision.New([]collision.BrushDef{
		collision.BoxBrush(mgl32.Vec3{-4096, -4096, -64}, mgl32.Vec3{4096, 4096, 0}),
	})
}

// groundedState returns a state standing on the flat world's floor.
func groundedState() MovementState {
	return NewMovementState(mgl32.Vec3{0, 0, 24.2})
}

func TestGroundFrictionSlows(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()
	st.Velocity = mgl32.Vec3{MaxSpeed, 0, 0}

	sim.Simulate(&st, game.UserCommand{ServerTime: 1})

	if !st.OnGround {
		t.Fatal("expected the player to be grounded")
	}
	speed := st.HorizontalSpeed()
	if speed >= MaxSpeed {
		t.Fatalf("friction did not slow the player, speed %v", speed)
	}
	if speed <= 0 {
		t.Fatalf("one tick of friction should not stop a run, speed %v", speed)
	}
}

func TestGroundFrictionStopsFromLowSpeed(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()
	st.Velocity = mgl32.Vec3{2, 0, 0}

	for i := uint32(0); i < 30; i++ {
		sim.Simulate(&st, game.UserCommand{ServerTime: i + 1})
	}
	if st.HorizontalSpeed() != 0 {
		t.Fatalf("expected a crawl to stop completely, speed %v", st.HorizontalSpeed())
	}
}

func TestGroundAccelerationCapsAtMaxSpeed(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()

	for i := uint32(0); i < 256; i++ {
		sim.Simulate(&st, game.UserCommand{ServerTime: i + 1, ForwardMove: 1})
	}

	speed := st.HorizontalSpeed()
	if speed > MaxSpeed+0.5 {
		t.Fatalf("ground run exceeded the speed cap: %v", speed)
	}
	if speed < MaxSpeed*0.9 {
		t.Fatalf("ground run never approached the speed cap: %v", speed)
	}
}

func TestJumpRequiresFreshPress(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()
	st.JumpHeld = true

	cmd := game.UserCommand{ServerTime: 1, Buttons: game.ButtonJump}
	sim.Simulate(&st, cmd)
	if !st.OnGround {
		t.Fatal("held jump from a previous tick must not re-trigger")
	}

	st.JumpHeld = false
	cmd.ServerTime = 2
	sim.Simulate(&st, cmd)
	if st.OnGround {
		t.Fatal("fresh jump press should have left the ground")
	}
	if st.Velocity.Z() <= 0 {
		t.Fatalf("expected upward velocity after jump, got %v", st.Velocity.Z())
	}
}

func TestBunnyhopLandsAndRejumps(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()

	// Tapping jump every other tick re-arms the button between hops.
	jumps := 0
	for i := uint32(0); i < 512; i++ {
		cmd := game.UserCommand{ServerTime: i + 1, ForwardMove: 1}
		if i%2 == 0 {
			cmd.Buttons = game.ButtonJump
		}
		wasGround := st.OnGround
		sim.Simulate(&st, cmd)
		if wasGround && !st.OnGround && st.Velocity.Z() > 0 {
			jumps++
		}
	}
	if jumps < 2 {
		t.Fatalf("expected repeated hops, got %d", jumps)
	}
}

func TestAirStrafeGainsSpeedPastCap(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := NewMovementState(mgl32.Vec3{0, 0, 2000})
	st.Velocity = mgl32.Vec3{MaxSpeed, 0, 0}

	// Wish direction 45 degrees off the velocity: the classic strafe-jump
	// input. Air acceleration has no cap against the projected speed, so
	// total speed climbs past MaxSpeed.
	for i := uint32(0); i < 100; i++ {
		sim.Simulate(&st, game.UserCommand{ServerTime: i + 1, ForwardMove: 1, SideMove: 1})
	}

	if st.OnGround {
		t.Fatal("expected the player to still be airborne")
	}
	if speed := st.HorizontalSpeed(); speed <= MaxSpeed {
		t.Fatalf("air strafing should beat the ground cap, speed %v", speed)
	}
}

func TestAirControlPreservesSpeed(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := NewMovementState(mgl32.Vec3{0, 0, 2000})
	st.Velocity = mgl32.Vec3{400, 0, 0}

	before := st.HorizontalSpeed()
	// Pure forward input turned 30 degrees off the velocity steers without
	// the acceleration path adding speed (dot exceeds wishspeed).
	sim.Simulate(&st, game.UserCommand{ServerTime: 1, ForwardMove: 1, Yaw: 30})
	after := st.HorizontalSpeed()

	if st.Velocity.Y() <= 0 {
		t.Fatal("air control should have bent velocity toward the view")
	}
	if after > before+1 || after < before-1 {
		t.Fatalf("air control must preserve speed: before %v after %v", before, after)
	}
}

func TestStepClimbsStairs(t *testing.T) {
	w := collision.New([]collision.BrushDef{
		collision.BoxBrush(mgl32.Vec3{-4096, -4096, -64}, mgl32.Vec3{4096, 4096, 0}),
		collision.BoxBrush(mgl32.Vec3{50, -512, 0}, mgl32.Vec3{400, 512, 16}),
	})
	sim := Simulator{World: w}
	st := groundedState()

	for i := uint32(0); i < 128; i++ {
		sim.Simulate(&st, game.UserCommand{ServerTime: i + 1, ForwardMove: 1})
	}

	if st.Origin.X() < 70 {
		t.Fatalf("run was blocked by a step below step height, x %v", st.Origin.X())
	}
	if st.Origin.Z() < 38 {
		t.Fatalf("expected the player on top of the step, z %v", st.Origin.Z())
	}
}

func TestWallTallerThanStepBlocks(t *testing.T) {
	w := collision.New([]collision.BrushDef{
		collision.BoxBrush(mgl32.Vec3{-4096, -4096, -64}, mgl32.Vec3{4096, 4096, 0}),
		collision.BoxBrush(mgl32.Vec3{100, -512, 0}, mgl32.Vec3{200, 512, 128}),
	})
	sim := Simulator{World: w}
	st := groundedState()

	for i := uint32(0); i < 256; i++ {
		sim.Simulate(&st, game.UserCommand{ServerTime: i + 1, ForwardMove: 1})
	}

	// The leading face is 15 ahead of the origin, so the origin stops short
	// of x=85 and stays on the floor.
	if st.Origin.X() > 86 {
		t.Fatalf("player passed through a wall, x %v", st.Origin.X())
	}
	if st.Origin.Z() > 30 {
		t.Fatalf("player climbed a wall above step height, z %v", st.Origin.Z())
	}
}

func TestInsideCornerStopsCleanly(t *testing.T) {
	w := collision.New([]collision.BrushDef{
		collision.BoxBrush(mgl32.Vec3{-4096, -4096, -64}, mgl32.Vec3{4096, 4096, 0}),
		collision.BoxBrush(mgl32.Vec3{100, -4096, 0}, mgl32.Vec3{200, 4096, 128}),
		collision.BoxBrush(mgl32.Vec3{-4096, 100, 0}, mgl32.Vec3{4096, 200, 128}),
	})
	sim := Simulator{World: w}
	st := groundedState()
	st.Origin = mgl32.Vec3{40, 40, 24.2}

	for i := uint32(0); i < 128; i++ {
		sim.Simulate(&st, game.UserCommand{ServerTime: i + 1, ForwardMove: 1, Yaw: 45})
	}

	if st.Origin.X() > 86 || st.Origin.Y() > 86 {
		t.Fatalf("player penetrated the corner at %v", st.Origin)
	}
	for i := 0; i < 3; i++ {
		if st.Origin[i] != st.Origin[i] {
			t.Fatal("corner produced NaN origin")
		}
	}
}

func TestSlickTicksSuppressFriction(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()
	st.Velocity = mgl32.Vec3{MaxSpeed, 0, 0}
	st.SplashSlickTicks = 2

	before := st.HorizontalSpeed()
	sim.Simulate(&st, game.UserCommand{ServerTime: 1})
	if st.HorizontalSpeed() < before-0.01 {
		t.Fatalf("friction applied during slick ticks: %v -> %v", before, st.HorizontalSpeed())
	}

	sim.Simulate(&st, game.UserCommand{ServerTime: 2})
	sim.Simulate(&st, game.UserCommand{ServerTime: 3})
	if st.HorizontalSpeed() >= before {
		t.Fatal("friction should resume once slick ticks expire")
	}
}

func TestCommandTimeStrictlyMonotonic(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()

	sim.Simulate(&st, game.UserCommand{ServerTime: 100})
	if st.CommandTime != 100 {
		t.Fatalf("expected command time 100, got %d", st.CommandTime)
	}

	// A hostile client repeating or rewinding timestamps still advances.
	sim.Simulate(&st, game.UserCommand{ServerTime: 100})
	if st.CommandTime != 101 {
		t.Fatalf("expected forced advance to 101, got %d", st.CommandTime)
	}
	sim.Simulate(&st, game.UserCommand{ServerTime: 50})
	if st.CommandTime != 102 {
		t.Fatalf("expected forced advance to 102, got %d", st.CommandTime)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	simA := Simulator{World: flatWorld()}
	simB := Simulator{World: flatWorld()}
	a := groundedState()
	b := groundedState()

	for i := uint32(0); i < 200; i++ {
		cmd := game.UserCommand{
			ServerTime:  i + 1,
			ForwardMove: 1,
			SideMove:    float32(i%3) - 1,
			Yaw:         float32(i * 3 % 360),
		}
		if i%4 == 0 {
			cmd.Buttons = game.ButtonJump
		}
		simA.Simulate(&a, cmd)
		simB.Simulate(&b, cmd)
	}

	if a != b {
		t.Fatalf("identical inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestDepenetrationRecovers(t *testing.T) {
	sim := Simulator{World: flatWorld()}
	st := groundedState()
	st.Origin = mgl32.Vec3{0, 0, 23.5} // hull bottom half a unit into the floor

	sim.Simulate(&st, game.UserCommand{ServerTime: 1})

	tr := sim.World.Trace(st.Origin, st.Origin, st.Mins, st.Maxs)
	if tr.StartSolid {
		t.Fatalf("expected depenetration to free the hull, origin %v", st.Origin)
	}
}
