package server

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/entity"
	"github.com/qkarena/qk/game"
)

// tickProjectiles advances every live projectile one tick: lifetime check,
// sweep against the world, ray test against players, then either explode or
// commit the new position. Iteration is bounded by the pool's high-water
// mark captured before any spawns this tick could raise it.
func (sv *Server) tickProjectiles() {
	now := game.ServerTimeMillis(sv.tick)
	high := sv.pool.HighWater()

	for id := int32(0); id < high; id++ {
		e := sv.pool.Find(id)
		if e == nil || e.Kind != entity.KindProjectile {
			continue
		}
		pr := &e.Projectile

		def := &game.Weapons[pr.Weapon]
		if def.LifetimeMillis > 0 && now-pr.SpawnTime >= uint32(def.LifetimeMillis) {
			sv.pool.Free(id)
			continue
		}

		newOrigin := pr.Origin.Add(pr.Velocity.Mul(game.TickDT))
		worldTr := sv.world.Trace(pr.Origin, newOrigin, mgl32.Vec3{}, mgl32.Vec3{})

		hit, hitDist := sv.nearestPlayerOnRay(pr.Owner, pr.Origin, worldTr.EndPos)
		if hit >= 0 {
			dir := pr.Velocity
			if dir.LenSqr() > 0 {
				dir = dir.Normalize()
			}
			impact := pr.Origin.Add(dir.Mul(hitDist))

			sv.applyDamage(Damage{
				Victim:   hit,
				Attacker: pr.Owner,
				Dir:      dir,
				Raw:      pr.Damage,
				Weapon:   pr.Weapon,
			})
			sv.splash(impact, pr.Owner, pr.Weapon, pr.SplashRadius, pr.SplashDamage)
			sv.pool.Free(id)
			continue
		}

		if worldTr.Hit() || worldTr.StartSolid {
			sv.splash(worldTr.EndPos, pr.Owner, pr.Weapon, pr.SplashRadius, pr.SplashDamage)
			sv.pool.Free(id)
			continue
		}

		pr.Origin = newOrigin
	}
}
