package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/game"
)

func TestJumppadVelocityClearsTarget(t *testing.T) {
	start := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{256, 0, 128}

	vel := JumppadVelocity(start, target)
	if vel.Z() <= 0 {
		t.Fatalf("expected an upward launch, got %v", vel)
	}

	// The ballistic apex must clear the target height by the margin.
	apex := vel.Z() * vel.Z() / (2 * Gravity)
	if apex < 128+JumppadApexMargin-0.5 {
		t.Fatalf("apex %v does not clear target rise plus margin", apex)
	}

	// The horizontal component points at the target.
	if vel.X() <= 0 || vel.Y() != 0 {
		t.Fatalf("horizontal launch should point at the target, got %v", vel)
	}
}

func TestJumppadVelocityStraightUp(t *testing.T) {
	vel := JumppadVelocity(mgl32.Vec3{}, mgl32.Vec3{0, 0, 200})
	if vel.X() != 0 || vel.Y() != 0 {
		t.Fatalf("vertical pad should have no horizontal velocity, got %v", vel)
	}
	if vel.Z() <= 0 {
		t.Fatal("vertical pad should launch upward")
	}
}

func TestJumppadVelocityRejectsDownwardTarget(t *testing.T) {
	vel := JumppadVelocity(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{64, 0, 100})
	if vel != (mgl32.Vec3{}) {
		t.Fatalf("level or downward targets must launch nothing, got %v", vel)
	}
}

func TestJumppadArcPassesOverTarget(t *testing.T) {
	// Integrate the launch under the same gravity step the simulation uses.
	// When the arc crosses the target horizontally it should be at or a bit
	// above the target height, never below it.
	start := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{300, 100, 150}
	vel := JumppadVelocity(start, target)

	pos := start
	closestHz := float32(1e9)
	heightThere := float32(0)
	for i := 0; i < 512; i++ {
		vel[2] -= Gravity * game.TickDT
		pos = pos.Add(vel.Mul(game.TickDT))
		if d := game.Vec3HzLen(pos.Sub(target)); d < closestHz {
			closestHz = d
			heightThere = pos.Z()
		}
	}
	if closestHz > 8 {
		t.Fatalf("arc never crossed the target horizontally, closest %v", closestHz)
	}
	if heightThere < target.Z()-5 {
		t.Fatalf("arc passed under the target: z %v", heightThere)
	}
	if heightThere > target.Z()+JumppadApexMargin+16 {
		t.Fatalf("arc overflew the target by too much: z %v", heightThere)
	}
}
