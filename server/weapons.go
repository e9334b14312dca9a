package server

import (
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/entity"
	"github.com/qkarena/qk/game"
)

// projectileSpawnOffset is how far ahead of the eye a projectile appears,
// keeping it clear of the shooter's own hull.
const projectileSpawnOffset = float32(16)

// tickWeapon advances one player's weapon timers and fires when possible.
// Switching blocks firing: while SwitchTime runs down nothing else happens,
// and the pending weapon commits the moment it reaches zero.
func (sv *Server) tickWeapon(client int32) {
	st := sv.clientState(client)
	if st == nil || st.Alive != game.AliveStateAlive {
		return
	}
	dt := int32(game.TickMillis(sv.tick))

	if sel := st.LastCmd.WeaponSelect; game.ValidWeapon(sel) && sel != st.Weapon && sel != st.PendingWeapon {
		st.PendingWeapon = sel
		st.SwitchTime = game.Weapons[sel].SwitchMillis
	}

	if st.SwitchTime > 0 {
		st.SwitchTime -= dt
		if st.SwitchTime <= 0 {
			st.SwitchTime = 0
			if game.ValidWeapon(st.PendingWeapon) {
				st.Weapon = st.PendingWeapon
			}
			st.PendingWeapon = game.WeaponNone
		}
		return
	}

	if st.WeaponTime > 0 {
		st.WeaponTime -= dt
		if st.WeaponTime < 0 {
			st.WeaponTime = 0
		}
		return
	}

	if st.LastCmd.Pressed(game.ButtonAttack) {
		sv.fireWeapon(client)
	}
}

// fireWeapon dispatches on the weapon table's fire kind. It reports whether
// a shot actually happened; ammo is deducted and the cooldown armed only on
// success.
func (sv *Server) fireWeapon(client int32) bool {
	st := sv.clientState(client)
	def := &game.Weapons[st.Weapon]
	if def.Kind == game.FireNone {
		return false
	}
	if st.Ammo[st.Weapon] < def.AmmoPerShot {
		return false
	}

	eye := st.EyePos()
	dir := game.AimVector(st.Yaw, st.Pitch)

	switch def.Kind {
	case game.FireHitscan, game.FireBeam:
		sv.fireHitscan(client, st.Weapon, eye, dir, def)
	case game.FireProjectile:
		sv.spawnProjectile(client, st.Weapon, eye.Add(dir.Mul(projectileSpawnOffset)), dir.Mul(def.Speed), def)
	}

	st.Ammo[st.Weapon] -= def.AmmoPerShot
	st.WeaponTime = def.FireIntervalMillis
	return true
}

// fireHitscan traces a ray from the eye and damages the first player it
// reaches, unless world geometry is hit first.
func (sv *Server) fireHitscan(attacker int32, weapon game.WeaponID, eye, dir mgl32.Vec3, def *game.WeaponDef) {
	end := eye.Add(dir.Mul(def.Range))

	worldTr := sv.world.Trace(eye, end, mgl32.Vec3{}, mgl32.Vec3{})
	maxDist := def.Range * worldTr.Fraction

	hit, hitDist := sv.nearestPlayerOnRay(attacker, eye, end)
	if hit < 0 || hitDist > maxDist {
		return
	}

	sv.applyDamage(Damage{
		Victim:   hit,
		Attacker: attacker,
		Dir:      dir,
		Raw:      def.Damage,
		Weapon:   weapon,
	})
}

// nearestPlayerOnRay returns the closest live player (excluding the owner)
// whose hull the ray intersects, with the distance to the intersection.
func (sv *Server) nearestPlayerOnRay(owner int32, start, end mgl32.Vec3) (int32, float32) {
	best := int32(-1)
	bestDist := float32(0)

	for i := int32(0); i < game.MaxClients; i++ {
		if i == owner {
			continue
		}
		st := sv.clientState(i)
		if st == nil || st.Alive != game.AliveStateAlive {
			continue
		}
		mins, maxs := st.Bounds()
		res, ok := trace.BBoxIntercept(boxFromCorners(mins, maxs), start, end)
		if !ok {
			continue
		}
		dist := res.Position().Sub(start).Len()
		if best < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best, bestDist
}

// spawnProjectile allocates a projectile entity. Pool exhaustion drops the
// shot silently; the simulation never fails a tick over it.
func (sv *Server) spawnProjectile(owner int32, weapon game.WeaponID, origin, velocity mgl32.Vec3, def *game.WeaponDef) int32 {
	id := sv.pool.Alloc(entity.KindProjectile)
	if id < 0 {
		return -1
	}
	e := sv.pool.Find(id)
	e.Projectile = entity.Projectile{
		Origin:       origin,
		Velocity:     velocity,
		Owner:        owner,
		Weapon:       weapon,
		SpawnTime:    game.ServerTimeMillis(sv.tick),
		Damage:       def.Damage,
		SplashRadius: def.SplashRadius,
		SplashDamage: def.SplashDamage,
	}
	return id
}
