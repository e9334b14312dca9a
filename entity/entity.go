package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/game"
)

// Kind tags a pool slot.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindProjectile
)

// Projectile is the in-flight state of a fired projectile. Damage values
// are copied out of the weapon table at spawn so a table edit mid-flight
// cannot change an already fired shot.
type Projectile struct {
	Origin   mgl32.Vec3
	Velocity mgl32.Vec3

	Owner     int32
	Weapon    game.WeaponID
	SpawnTime uint32

	Damage       int32
	SplashRadius float32
	SplashDamage int32
}

// Entity is one pool slot. The slot index is the entity's stable id.
type Entity struct {
	Kind       Kind
	Projectile Projectile
}
