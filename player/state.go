package player

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/physics"
)

const (
	SpawnHealth = 100
	SpawnArmor  = 100
	MaxHealth   = 200
	MaxArmor    = 200
)

// State is the complete authoritative state of one player: the movement
// portion simulated by physics plus everything gameplay owns. It is a plain
// value type so prediction can ring-buffer and compare whole copies.
type State struct {
	physics.MovementState

	EntityID int32
	Team     game.Team
	Alive    game.AliveState

	Weapon        game.WeaponID
	PendingWeapon game.WeaponID
	// WeaponTime is the remaining fire cooldown in ms; SwitchTime the
	// remaining weapon switch time. PendingWeapon commits when SwitchTime
	// reaches zero.
	WeaponTime int32
	SwitchTime int32
	Ammo       [game.WeaponCount]int32

	Health int32
	Armor  int32

	Frags       int32
	Deaths      int32
	DamageGiven int32
	DamageTaken int32

	RespawnTime uint32

	LastCmd game.UserCommand
}

// New returns a connected player on the given team, not yet spawned.
func New(entityID int32, team game.Team) State {
	return State{
		MovementState: physics.NewMovementState(mgl32.Vec3{}),
		EntityID:      entityID,
		Team:          team,
		Alive:         game.AliveStateSpectating,
		Weapon:        game.WeaponMachinegun,
	}
}

// Spawn resets the player at the given point for a new round. Stats and
// team survive; movement, loadout, health and armor reset.
func (s *State) Spawn(origin mgl32.Vec3, yaw float32) {
	teleportBit := s.TeleportBit
	commandTime := s.CommandTime

	s.MovementState = physics.NewMovementState(origin)
	s.TeleportBit = teleportBit ^ 1
	s.CommandTime = commandTime
	s.Yaw = game.WrapYaw(yaw)

	s.Alive = game.AliveStateAlive
	s.Health = SpawnHealth
	s.Armor = SpawnArmor

	s.Weapon = game.WeaponRocketLauncher
	s.PendingWeapon = game.WeaponNone
	s.WeaponTime = 0
	s.SwitchTime = 0
	for id := game.WeaponID(0); id < game.WeaponCount; id++ {
		s.Ammo[id] = game.Weapons[id].StartAmmo
	}
}

// Bounds returns the player's AABB corners at the current origin.
func (s *State) Bounds() (mins, maxs mgl32.Vec3) {
	return s.Origin.Add(s.Mins), s.Origin.Add(s.Maxs)
}

// SyncGameplay copies the authoritative non-positional fields from src.
// Reconciliation always applies these, even when the predicted origin is
// accepted.
func (s *State) SyncGameplay(src *State) {
	s.Team = src.Team
	s.Alive = src.Alive
	s.Weapon = src.Weapon
	s.PendingWeapon = src.PendingWeapon
	s.WeaponTime = src.WeaponTime
	s.SwitchTime = src.SwitchTime
	s.Ammo = src.Ammo
	s.Health = src.Health
	s.Armor = src.Armor
	s.Frags = src.Frags
	s.Deaths = src.Deaths
	s.DamageGiven = src.DamageGiven
	s.DamageTaken = src.DamageTaken
	s.RespawnTime = src.RespawnTime
}
