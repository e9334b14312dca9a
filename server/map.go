package server

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/collision"
)

// Teleporter is a trigger volume that relocates a player to a destination,
// redirecting their horizontal speed along the destination yaw.
type Teleporter struct {
	Mins mgl32.Vec3
	Maxs mgl32.Vec3

	Dest    mgl32.Vec3
	DestYaw float32
}

// JumpPad is a trigger volume that launches a player onto the ballistic arc
// hitting Target. Target must be strictly above the volume.
type JumpPad struct {
	Mins mgl32.Vec3
	Maxs mgl32.Vec3

	Target mgl32.Vec3
}

// SpawnPoint is one per-team spawn location.
type SpawnPoint struct {
	Origin mgl32.Vec3
	Yaw    float32
}

// MapData is everything the map loader hands the simulation: collision
// brushes, trigger tables, and spawn points. The loader itself lives
// outside the core.
type MapData struct {
	Brushes []collision.BrushDef

	Teleporters []Teleporter
	JumpPads    []JumpPad

	SpawnsAlpha []SpawnPoint
	SpawnsBeta  []SpawnPoint
}
