package game

const (
	// TickRate is the single wire-visible constant. Everything else in the
	// simulation derives from it.
	TickRate = 128

	// TickDT is the fixed simulation timestep in seconds.
	TickDT = float32(1.0 / 128.0)

	// TickMillisNominal is the nominal per-tick duration in milliseconds.
	// Individual ticks alternate 7/8 ms so that 128 ticks sum to exactly
	// 1000ms; use TickMillis for the per-tick value.
	TickMillisNominal = float32(1000.0 / 128.0)

	MaxClients      = 16
	MaxEntities     = 256
	MaxCatchupTicks = 8
)

// Team identifies which side a player fights for.
type Team uint8

const (
	TeamNone Team = iota
	TeamAlpha
	TeamBeta
)

func (t Team) Opponent() Team {
	switch t {
	case TeamAlpha:
		return TeamBeta
	case TeamBeta:
		return TeamAlpha
	}
	return TeamNone
}

func (t Team) String() string {
	switch t {
	case TeamAlpha:
		return "alpha"
	case TeamBeta:
		return "beta"
	}
	return "none"
}

// AliveState tracks whether a player participates in combat. Dead players
// keep simulating movement but deal and receive no damage.
type AliveState uint8

const (
	AliveStateSpectating AliveState = iota
	AliveStateAlive
	AliveStateDead
)
