package server

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/physics"
)

// ArmorAbsorb is the fraction of incoming damage armor soaks while any
// armor remains.
const ArmorAbsorb = float32(0.66)

// Damage is one damage application flowing through the central pipeline.
// Attacker and Victim are client ids; Dir is the unit knockback direction.
type Damage struct {
	Victim   int32
	Attacker int32

	Dir    mgl32.Vec3
	Raw    int32
	Weapon game.WeaponID
	IsSelf bool
}

// applyDamage is the single entry point for all damage: hitscan,
// projectile impact, and splash all funnel through here.
//
// Self damage is special-cased for rocket jumps: the knockback and slick
// ticks always apply, in every round phase, or movement would feel
// different in warmup; the health deduction is gated by PLAYING like all
// other damage.
func (sv *Server) applyDamage(d Damage) {
	victim := sv.clientState(d.Victim)
	if victim == nil || victim.Alive != game.AliveStateAlive {
		return
	}
	def := &game.Weapons[d.Weapon]

	if d.IsSelf {
		kick := d.Dir.Mul(def.SelfKnockback * float32(d.Raw))
		victim.Velocity = victim.Velocity.Add(kick)
		victim.SplashSlickTicks = physics.SplashSlickTicksOnHit

		if sv.round.Phase != RoundPlaying {
			return
		}
		selfDmg := int32(float32(d.Raw) * def.SelfDamageMult)
		victim.Health -= selfDmg
		victim.DamageTaken += selfDmg
		if victim.Health <= 0 {
			sv.kill(d)
		}
		return
	}

	if sv.round.Phase != RoundPlaying {
		return
	}

	armorDmg := int32(float32(d.Raw) * ArmorAbsorb)
	if armorDmg > victim.Armor {
		armorDmg = victim.Armor
	}
	healthDmg := d.Raw - armorDmg

	victim.Armor -= armorDmg
	victim.Health -= healthDmg
	victim.DamageTaken += d.Raw

	kick := d.Dir.Mul(def.Knockback * float32(d.Raw))
	victim.Velocity = victim.Velocity.Add(kick)
	victim.SplashSlickTicks = physics.SplashSlickTicksOnHit

	if attacker := sv.clientState(d.Attacker); attacker != nil {
		attacker.DamageGiven += d.Raw
		sv.events.Emit(game.Event{
			Kind:     game.EventHit,
			Attacker: d.Attacker,
			Victim:   d.Victim,
			Weapon:   d.Weapon,
			Damage:   d.Raw,
		})
	}

	if victim.Health <= 0 {
		sv.kill(d)
	}
}

// kill processes a lethal damage application: scoring, the kill event, and
// the alive recount the round machine reads.
func (sv *Server) kill(d Damage) {
	victim := sv.clientState(d.Victim)
	victim.Alive = game.AliveStateDead
	victim.Deaths++
	victim.RespawnTime = game.ServerTimeMillis(sv.tick)

	if attacker := sv.clientState(d.Attacker); attacker != nil {
		if d.Attacker == d.Victim {
			attacker.Frags--
		} else {
			attacker.Frags++
		}
	}

	sv.events.Emit(game.Event{
		Kind:     game.EventKill,
		Attacker: d.Attacker,
		Victim:   d.Victim,
		Weapon:   d.Weapon,
	})

	sv.countAlive()
}

// splash applies radius damage around pos for an exploding weapon. Damage
// and knockback fall off linearly with distance; the direction is from the
// explosion to the victim, straight up if they coincide.
func (sv *Server) splash(pos mgl32.Vec3, attacker int32, weapon game.WeaponID, radius float32, damage int32) {
	if radius <= 0 || damage <= 0 {
		return
	}

	sv.events.Emit(game.Event{Kind: game.EventExplosion, Attacker: attacker, Weapon: weapon, Pos: pos})

	for i := int32(0); i < game.MaxClients; i++ {
		st := sv.clientState(i)
		if st == nil || st.Alive != game.AliveStateAlive {
			continue
		}

		delta := st.Origin.Sub(pos)
		dist := delta.Len()
		if dist >= radius {
			continue
		}

		scale := 1 - dist/radius
		scaled := int32(float32(damage) * scale)
		if scaled <= 0 {
			continue
		}

		dir := mgl32.Vec3{0, 0, 1}
		if dist > 0 {
			dir = delta.Mul(1 / dist)
		}

		sv.applyDamage(Damage{
			Victim:   i,
			Attacker: attacker,
			Dir:      dir,
			Raw:      scaled,
			Weapon:   weapon,
			IsSelf:   i == attacker,
		})
	}
}
