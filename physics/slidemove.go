package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/game"
)

// clipVelocity projects the inward-facing component of a velocity out of a
// contact plane, overclipping slightly so the result does not graze it.
func clipVelocity(in, normal mgl32.Vec3, overclip float32) mgl32.Vec3 {
	backoff := in.Dot(normal)
	if backoff < 0 {
		backoff *= overclip
	} else {
		backoff /= overclip
	}
	return in.Sub(normal.Mul(backoff))
}

// slideMove advances the origin through up to MaxSlideBumps contact planes,
// clipping velocity at each. It reports whether the move was blocked short
// of the full displacement.
func (s *Simulator) slideMove(st *MovementState, dt float32) bool {
	timeLeft := dt
	primal := st.Velocity
	blocked := false

	var planes [MaxClipPlanes]mgl32.Vec3
	numPlanes := 0

	for bump := 0; bump < MaxSlideBumps; bump++ {
		if st.Velocity == (mgl32.Vec3{}) {
			break
		}

		end := st.Origin.Add(st.Velocity.Mul(timeLeft))
		tr := s.World.Trace(st.Origin, end, st.Mins, st.Maxs)

		if tr.AllSolid {
			st.Velocity = mgl32.Vec3{}
			s.Debug.record(DebugRecord{Kind: DebugPrimalReject, CommandTime: st.CommandTime})
			return true
		}
		if tr.Fraction > 0 {
			st.Origin = tr.EndPos
		}
		if tr.Fraction == 1 {
			break
		}

		blocked = true
		timeLeft *= 1 - tr.Fraction

		// A plane we already clipped against means the clip pushed us
		// straight back into it: a corner trap. Bias velocity along the
		// crease of the two most recent distinct planes and retry.
		if hasNearPlane(planes[:numPlanes], tr.Normal) {
			s.Debug.record(DebugRecord{Kind: DebugCornerTrap, CommandTime: st.CommandTime, Normal: tr.Normal})
			if numPlanes >= 2 {
				crease := planes[numPlanes-1].Cross(planes[numPlanes-2])
				if crease.LenSqr() > 1e-6 {
					crease = crease.Normalize()
					st.Velocity = crease.Mul(crease.Dot(st.Velocity))
					continue
				}
			}
			st.Velocity = st.Velocity.Add(tr.Normal)
			continue
		}

		planes[numPlanes] = tr.Normal
		numPlanes++
		if numPlanes >= 3 {
			// Three distinct planes leave no open direction.
			st.Velocity = mgl32.Vec3{}
			s.Debug.record(DebugRecord{Kind: DebugCornered, CommandTime: st.CommandTime})
			return true
		}

		v := st.Velocity
		for i := 0; i < numPlanes; i++ {
			if v.Dot(planes[i]) < 0 {
				v = clipVelocity(v, planes[i], Overclip)
			}
		}
		if v.Dot(primal) < 0 {
			st.Velocity = mgl32.Vec3{}
			s.Debug.record(DebugRecord{Kind: DebugPrimalReject, CommandTime: st.CommandTime, Normal: tr.Normal})
			return true
		}
		st.Velocity = v
		s.Debug.record(DebugRecord{Kind: DebugBump, CommandTime: st.CommandTime, Normal: tr.Normal})
	}

	return blocked
}

// stepSlideMove runs the base slide and, when it was blocked, retries the
// move from STEP_HEIGHT up to climb stairs, keeping whichever attempt got
// farther horizontally. Ties resolve to the base move.
func (s *Simulator) stepSlideMove(st *MovementState, dt float32) {
	s.correctAllSolid(st)

	startOrigin, startVel := st.Origin, st.Velocity

	if !s.slideMove(st, dt) {
		return
	}

	baseOrigin, baseVel := st.Origin, st.Velocity

	up := startOrigin.Add(mgl32.Vec3{0, 0, StepHeight})
	trUp := s.World.Trace(startOrigin, up, st.Mins, st.Maxs)
	if trUp.AllSolid || trUp.StartSolid {
		return
	}

	st.Origin = trUp.EndPos
	st.Velocity = startVel
	s.slideMove(st, dt)

	down := st.Origin.Sub(mgl32.Vec3{0, 0, StepHeight})
	trDown := s.World.Trace(st.Origin, down, st.Mins, st.Maxs)
	if !trDown.AllSolid {
		st.Origin = trDown.EndPos
	}

	steppedOntoFloor := !trDown.Hit() || trDown.Normal.Z() >= MinWalkNormalZ

	baseAdvance := game.Vec3HzDistSqr(baseOrigin.Sub(startOrigin))
	stepAdvance := game.Vec3HzDistSqr(st.Origin.Sub(startOrigin))

	if !steppedOntoFloor || stepAdvance <= baseAdvance {
		st.Origin = baseOrigin
		st.Velocity = baseVel
		return
	}

	if trDown.Hit() {
		st.Velocity = clipVelocity(st.Velocity, trDown.Normal, Overclip)
	}
	s.Debug.record(DebugRecord{Kind: DebugStepUp, CommandTime: st.CommandTime, Offset: st.Origin.Sub(baseOrigin)})
}

// correctAllSolid recovers a tick that begins inside geometry by probing six
// axis-aligned unit displacements and adopting the first clean one. If every
// probe is solid the player stays put with zeroed velocity.
func (s *Simulator) correctAllSolid(st *MovementState) {
	tr := s.World.Trace(st.Origin, st.Origin, st.Mins, st.Maxs)
	if !tr.StartSolid {
		return
	}

	offsets := [6]mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for _, ofs := range offsets {
		probe := st.Origin.Add(ofs)
		if !s.World.Trace(probe, probe, st.Mins, st.Maxs).StartSolid {
			st.Origin = probe
			s.Debug.record(DebugRecord{Kind: DebugDepenetrate, CommandTime: st.CommandTime, Offset: ofs})
			return
		}
	}

	st.Velocity = mgl32.Vec3{}
	s.Debug.record(DebugRecord{Kind: DebugDepenetrate, CommandTime: st.CommandTime})
}

func hasNearPlane(planes []mgl32.Vec3, normal mgl32.Vec3) bool {
	for _, p := range planes {
		if normal.Dot(p) > 1-1e-6 {
			return true
		}
	}
	return false
}
