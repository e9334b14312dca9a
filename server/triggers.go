package server

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/physics"
	"github.com/qkarena/qk/player"
)

// TriggerCooldownTicks keeps a volume from re-firing for the same player
// every tick they stand inside it (~125ms at 128Hz).
const TriggerCooldownTicks = 16

type triggerKind uint8

const (
	triggerTeleporter triggerKind = iota
	triggerJumpPad
)

type triggerKey struct {
	kind   triggerKind
	index  int
	client int32
}

// triggerState holds the loaded trigger tables and the per-(volume,player)
// cooldowns. The cooldown map is ordered so cooldown expiry is processed in
// insertion order on every machine, keeping the tick deterministic.
type triggerState struct {
	teleporters []Teleporter
	jumpPads    []JumpPad

	teleporterBoxes []cube.BBox
	jumpPadBoxes    []cube.BBox

	cooldowns *orderedmap.OrderedMap[triggerKey, int]
}

func (t *triggerState) init(md MapData, log *logrus.Logger) {
	t.teleporters = md.Teleporters
	for _, tp := range t.teleporters {
		t.teleporterBoxes = append(t.teleporterBoxes, boxFromCorners(tp.Mins, tp.Maxs))
	}

	for i, pad := range md.JumpPads {
		center := pad.Mins.Add(pad.Maxs).Mul(0.5)
		if pad.Target.Z() <= center.Z() {
			log.WithField("jumppad", i).Warn("jump pad target not above pad, rejected")
			continue
		}
		t.jumpPads = append(t.jumpPads, pad)
		t.jumpPadBoxes = append(t.jumpPadBoxes, boxFromCorners(pad.Mins, pad.Maxs))
	}

	t.cooldowns = orderedmap.NewOrderedMap[triggerKey, int]()
}

// tickTriggers fires teleporters then jump pads for every live player and
// ages the cooldowns.
func (sv *Server) tickTriggers() {
	t := &sv.triggers

	var expired []triggerKey
	for el := t.cooldowns.Front(); el != nil; el = el.Next() {
		if el.Value <= 1 {
			expired = append(expired, el.Key)
		} else {
			t.cooldowns.Set(el.Key, el.Value-1)
		}
	}
	for _, key := range expired {
		t.cooldowns.Delete(key)
	}

	for i := int32(0); i < game.MaxClients; i++ {
		st := sv.clientState(i)
		if st == nil || st.Alive != game.AliveStateAlive {
			continue
		}
		mins, maxs := st.Bounds()
		playerBox := boxFromCorners(mins, maxs)

		for ti := range t.teleporters {
			if !playerBox.IntersectsWith(t.teleporterBoxes[ti]) {
				continue
			}
			key := triggerKey{kind: triggerTeleporter, index: ti, client: i}
			if _, held := t.cooldowns.Get(key); held {
				continue
			}
			sv.teleport(st, &t.teleporters[ti])
			t.cooldowns.Set(key, TriggerCooldownTicks)
		}

		for pi := range t.jumpPads {
			if !playerBox.IntersectsWith(t.jumpPadBoxes[pi]) {
				continue
			}
			key := triggerKey{kind: triggerJumpPad, index: pi, client: i}
			if _, held := t.cooldowns.Get(key); held {
				continue
			}
			sv.launch(st, &t.jumpPads[pi])
			t.cooldowns.Set(key, TriggerCooldownTicks)
		}
	}
}

// teleport relocates the player and redirects their horizontal speed along
// the destination yaw. Vertical velocity is preserved, so falling into a
// teleporter exits falling.
func (sv *Server) teleport(st *player.State, tp *Teleporter) {
	hzSpeed := st.HorizontalSpeed()

	st.Origin = tp.Dest
	st.Yaw = game.WrapYaw(tp.DestYaw)

	forward, _ := game.YawVectors(st.Yaw)
	vel := forward.Mul(hzSpeed)
	vel[2] = st.Velocity.Z()
	st.Velocity = vel

	st.TeleportBit ^= 1
}

// launch puts the player on the pad's ballistic arc. JumpHeld is forced on
// so a held jump key is not consumed as a fresh hop on the pad, and slick
// ticks keep friction from eating the launch if the player grazes ground.
func (sv *Server) launch(st *player.State, pad *JumpPad) {
	st.Velocity = physics.JumppadVelocity(st.Origin, pad.Target)
	st.OnGround = false
	st.JumpHeld = true
	st.SplashSlickTicks = physics.SplashSlickTicksOnPad
}

func boxFromCorners(mins, maxs mgl32.Vec3) cube.BBox {
	return cube.Box(mins.X(), mins.Y(), mins.Z(), maxs.X(), maxs.Y(), maxs.Z())
}
