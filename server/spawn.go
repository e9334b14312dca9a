package server

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qkarena/qk/game"
)

// spawnState hands out per-team spawn points round-robin so a respawning
// team spreads across its spawns instead of stacking on the first one.
type spawnState struct {
	alpha []SpawnPoint
	beta  []SpawnPoint

	nextAlpha int
	nextBeta  int
}

func (s *spawnState) init(md MapData) {
	s.alpha = md.SpawnsAlpha
	s.beta = md.SpawnsBeta
	if len(s.alpha) == 0 {
		s.alpha = []SpawnPoint{{Origin: mgl32.Vec3{0, 0, 25}}}
	}
	if len(s.beta) == 0 {
		s.beta = []SpawnPoint{{Origin: mgl32.Vec3{0, 0, 25}, Yaw: 180}}
	}
}

func (s *spawnState) next(team game.Team) SpawnPoint {
	if team == game.TeamBeta {
		sp := s.beta[s.nextBeta%len(s.beta)]
		s.nextBeta++
		return sp
	}
	sp := s.alpha[s.nextAlpha%len(s.alpha)]
	s.nextAlpha++
	return sp
}

// reset restarts the round-robin counters for a fresh round.
func (s *spawnState) reset() {
	s.nextAlpha = 0
	s.nextBeta = 0
}
