package server

import (
	"github.com/sirupsen/logrus"

	"github.com/qkarena/qk/entity"
	"github.com/qkarena/qk/game"
)

// RoundPhase is the round state machine's current phase.
type RoundPhase uint8

const (
	RoundWarmup RoundPhase = iota
	RoundCountdown
	RoundPlaying
	RoundEnded
	MatchEnded
)

func (p RoundPhase) String() string {
	switch p {
	case RoundWarmup:
		return "warmup"
	case RoundCountdown:
		return "countdown"
	case RoundPlaying:
		return "playing"
	case RoundEnded:
		return "round_end"
	case MatchEnded:
		return "match_end"
	}
	return "unknown"
}

// warmupRespawnMillis is how long a death in warmup sticks before the
// player pops back.
const warmupRespawnMillis = 2000

// RoundState is the authoritative round machine state.
type RoundState struct {
	Phase       RoundPhase
	TimerMillis int32

	ScoreAlpha int32
	ScoreBeta  int32

	AliveAlpha int32
	AliveBeta  int32

	RoundNumber int32
}

// Score returns the given team's round score.
func (r RoundState) Score(team game.Team) int32 {
	if team == game.TeamBeta {
		return r.ScoreBeta
	}
	return r.ScoreAlpha
}

// StartMatch is the admin trigger moving warmup into the first countdown.
// It is ignored in any other phase.
func (sv *Server) StartMatch() {
	if sv.round.Phase != RoundWarmup {
		return
	}
	sv.round.Phase = RoundCountdown
	sv.round.TimerMillis = sv.cfg.CountdownMillis
	sv.log.Info("match starting")
}

// RestartMatch is the admin trigger resetting a finished match to warmup.
func (sv *Server) RestartMatch() {
	if sv.round.Phase != MatchEnded {
		return
	}
	sv.round = RoundState{Phase: RoundWarmup}
	for i := int32(0); i < game.MaxClients; i++ {
		if sv.clients[i].used {
			sv.spawnClient(i)
		}
	}
	sv.log.Info("match restarted")
}

func (sv *Server) tickRound() {
	r := &sv.round
	dt := int32(game.TickMillis(sv.tick))

	switch r.Phase {
	case RoundWarmup:
		sv.respawnWarmupDead()

	case RoundCountdown:
		r.TimerMillis -= dt
		if r.TimerMillis <= 0 {
			sv.beginRound()
		}

	case RoundPlaying:
		sv.countAlive()
		if r.AliveAlpha == 0 || r.AliveBeta == 0 {
			sv.endRoundElimination()
			return
		}
		r.TimerMillis -= dt
		if r.TimerMillis <= 0 {
			sv.endRoundTimeout()
		}

	case RoundEnded:
		r.TimerMillis -= dt
		if r.TimerMillis <= 0 {
			if r.ScoreAlpha >= sv.cfg.RoundsToWin || r.ScoreBeta >= sv.cfg.RoundsToWin {
				sv.endMatch()
			} else {
				r.Phase = RoundCountdown
				r.TimerMillis = sv.cfg.CountdownMillis
			}
		}

	case MatchEnded:
		// Terminal until an admin restart.
	}
}

// beginRound starts live play: fresh round number, no leftover projectiles,
// everyone respawned at their team's round-robin spawns.
func (sv *Server) beginRound() {
	sv.round.RoundNumber++
	sv.freeAllProjectiles()
	sv.spawns.reset()

	for i := int32(0); i < game.MaxClients; i++ {
		if sv.clients[i].used {
			sv.spawnClient(i)
		}
	}

	sv.round.Phase = RoundPlaying
	sv.round.TimerMillis = sv.cfg.RoundTimeMillis
	sv.countAlive()

	sv.events.Emit(game.Event{Kind: game.EventRoundStart, Round: sv.round.RoundNumber})
	sv.log.WithField("round", sv.round.RoundNumber).Info("round started")
}

func (sv *Server) endRoundElimination() {
	winner := game.TeamNone
	if sv.round.AliveAlpha > 0 && sv.round.AliveBeta == 0 {
		winner = game.TeamAlpha
	} else if sv.round.AliveBeta > 0 && sv.round.AliveAlpha == 0 {
		winner = game.TeamBeta
	}
	sv.endRound(winner)
}

// endRoundTimeout awards the round to the team with the greater sum of
// alive health+armor. An exact tie is a draw and scores nothing.
func (sv *Server) endRoundTimeout() {
	var vitAlpha, vitBeta int32
	for i := int32(0); i < game.MaxClients; i++ {
		st := sv.clientState(i)
		if st == nil || st.Alive != game.AliveStateAlive {
			continue
		}
		switch st.Team {
		case game.TeamAlpha:
			vitAlpha += st.Health + st.Armor
		case game.TeamBeta:
			vitBeta += st.Health + st.Armor
		}
	}

	winner := game.TeamNone
	if vitAlpha > vitBeta {
		winner = game.TeamAlpha
	} else if vitBeta > vitAlpha {
		winner = game.TeamBeta
	}
	sv.endRound(winner)
}

func (sv *Server) endRound(winner game.Team) {
	switch winner {
	case game.TeamAlpha:
		sv.round.ScoreAlpha++
	case game.TeamBeta:
		sv.round.ScoreBeta++
	}

	sv.round.Phase = RoundEnded
	sv.round.TimerMillis = sv.cfg.RoundEndMillis

	sv.events.Emit(game.Event{Kind: game.EventRoundEnd, Winner: winner, Round: sv.round.RoundNumber})
	sv.log.WithFields(logrus.Fields{
		"round":  sv.round.RoundNumber,
		"winner": winner.String(),
		"alpha":  sv.round.ScoreAlpha,
		"beta":   sv.round.ScoreBeta,
	}).Info("round over")
}

func (sv *Server) endMatch() {
	winner := game.TeamAlpha
	if sv.round.ScoreBeta > sv.round.ScoreAlpha {
		winner = game.TeamBeta
	}
	sv.round.Phase = MatchEnded
	sv.events.Emit(game.Event{Kind: game.EventMatchEnd, Winner: winner})
	sv.log.WithField("winner", winner.String()).Info("match over")
}

func (sv *Server) countAlive() {
	var alpha, beta int32
	for i := int32(0); i < game.MaxClients; i++ {
		st := sv.clientState(i)
		if st == nil || st.Alive != game.AliveStateAlive {
			continue
		}
		switch st.Team {
		case game.TeamAlpha:
			alpha++
		case game.TeamBeta:
			beta++
		}
	}
	sv.round.AliveAlpha = alpha
	sv.round.AliveBeta = beta
}

func (sv *Server) respawnWarmupDead() {
	now := game.ServerTimeMillis(sv.tick)
	for i := int32(0); i < game.MaxClients; i++ {
		st := sv.clientState(i)
		if st == nil || st.Alive != game.AliveStateDead {
			continue
		}
		if now-st.RespawnTime >= warmupRespawnMillis {
			sv.spawnClient(i)
		}
	}
}

func (sv *Server) freeAllProjectiles() {
	for id := int32(0); id < sv.pool.HighWater(); id++ {
		if e := sv.pool.Find(id); e != nil && e.Kind == entity.KindProjectile {
			sv.pool.Free(id)
		}
	}
}
