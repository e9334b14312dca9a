package game

import "testing"

func TestServerTimeMillisSumsToWholeSeconds(t *testing.T) {
	if ServerTimeMillis(0) != 0 {
		t.Fatalf("tick 0 should be time 0, got %d", ServerTimeMillis(0))
	}
	if ServerTimeMillis(TickRate) != 1000 {
		t.Fatalf("expected 1000ms after %d ticks, got %d", TickRate, ServerTimeMillis(TickRate))
	}
	if ServerTimeMillis(TickRate*60) != 60_000 {
		t.Fatalf("expected 60000ms after a minute of ticks, got %d", ServerTimeMillis(TickRate*60))
	}
}

func TestTickMillisAlternatesAndSums(t *testing.T) {
	var sum uint32
	for tick := uint32(0); tick < TickRate; tick++ {
		ms := TickMillis(tick)
		if ms != 7 && ms != 8 {
			t.Fatalf("tick %d has duration %dms, expected 7 or 8", tick, ms)
		}
		sum += ms
	}
	if sum != 1000 {
		t.Fatalf("one second of ticks sums to %dms", sum)
	}
}

func TestAccumulatorDrainsWholeTicks(t *testing.T) {
	var a Accumulator
	a.Add(TickDT * 3.5)
	if n := a.Drain(); n != 3 {
		t.Fatalf("expected 3 ticks, got %d", n)
	}
	if n := a.Drain(); n != 0 {
		t.Fatalf("expected no further ticks, got %d", n)
	}
	a.Add(TickDT * 0.5)
	if n := a.Drain(); n != 1 {
		t.Fatalf("expected leftover half ticks to combine, got %d", n)
	}
}

func TestAccumulatorClampsCatchup(t *testing.T) {
	var a Accumulator
	a.Add(TickDT * float32(MaxCatchupTicks*4))
	if n := a.Drain(); n != MaxCatchupTicks {
		t.Fatalf("expected clamp to %d ticks, got %d", MaxCatchupTicks, n)
	}
	// The excess beyond the clamp is discarded, not banked.
	if n := a.Drain(); n != 0 {
		t.Fatalf("expected discarded backlog, got %d ticks", n)
	}
}

func TestAccumulatorAlpha(t *testing.T) {
	var a Accumulator
	a.Add(TickDT * 1.25)
	a.Drain()
	alpha := a.Alpha()
	if alpha < 0.2 || alpha > 0.3 {
		t.Fatalf("expected alpha near 0.25, got %v", alpha)
	}
}
