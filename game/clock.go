package game

// ServerTimeMillis returns the server time in milliseconds at the start of
// the given tick. The division floors, so consecutive ticks alternate 7ms
// and 8ms apart and 128 consecutive ticks always sum to exactly 1000ms.
func ServerTimeMillis(tick uint32) uint32 {
	return uint32(uint64(tick) * 1000 / TickRate)
}

// TickMillis returns the integer duration of the given tick in milliseconds.
func TickMillis(tick uint32) uint32 {
	return ServerTimeMillis(tick+1) - ServerTimeMillis(tick)
}

// Accumulator drives fixed-step simulation from variable real-time frames.
// Adding real dt banks time; Drain hands out at most MaxCatchupTicks per
// frame so a long stall cannot spiral the simulation.
type Accumulator struct {
	banked float32
}

// Add banks frame time into the accumulator.
func (a *Accumulator) Add(dt float32) {
	a.banked += dt
}

// Drain returns the number of fixed ticks to run for this frame and removes
// their time from the bank, clamped to MaxCatchupTicks. Time beyond the
// clamp is discarded.
func (a *Accumulator) Drain() int {
	ticks := 0
	for a.banked >= TickDT && ticks < MaxCatchupTicks {
		a.banked -= TickDT
		ticks++
	}
	if a.banked >= TickDT {
		a.banked = 0
	}
	return ticks
}

// Alpha returns the interpolation fraction for rendering between the
// previous and current tick.
func (a *Accumulator) Alpha() float32 {
	return a.banked / TickDT
}
