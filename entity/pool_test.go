package entity

import (
	"testing"

	"github.com/qkarena/qk/game"
)

func TestPoolAllocAndFind(t *testing.T) {
	var p Pool

	id := p.Alloc(KindPlayer)
	if id != 0 {
		t.Fatalf("first allocation should get id 0, got %d", id)
	}
	e := p.Find(id)
	if e == nil || e.Kind != KindPlayer {
		t.Fatalf("expected a live player entity, got %+v", e)
	}
	if p.Count(KindPlayer) != 1 {
		t.Fatalf("expected one player, counted %d", p.Count(KindPlayer))
	}
}

func TestPoolFreeInvalidatesId(t *testing.T) {
	var p Pool
	id := p.Alloc(KindProjectile)
	p.Free(id)
	if p.Find(id) != nil {
		t.Fatal("freed id should not resolve")
	}

	// Double free and out-of-range frees are no-ops.
	p.Free(id)
	p.Free(-1)
	p.Free(game.MaxEntities)
}

func TestPoolPrefersFreshSlots(t *testing.T) {
	var p Pool
	a := p.Alloc(KindProjectile)
	b := p.Alloc(KindProjectile)
	p.Free(a)

	// With fresh slots remaining, the freed low slot is not reused, so an
	// iteration over [0, HighWater) that started before this allocation
	// will still reach the new entity.
	c := p.Alloc(KindProjectile)
	if c <= b {
		t.Fatalf("expected a fresh slot beyond %d, got %d", b, c)
	}
	if p.HighWater() != c+1 {
		t.Fatalf("expected high water %d, got %d", c+1, p.HighWater())
	}
}

func TestPoolWrapsWhenFull(t *testing.T) {
	var p Pool
	for i := 0; i < game.MaxEntities; i++ {
		if p.Alloc(KindProjectile) < 0 {
			t.Fatalf("pool exhausted early at %d", i)
		}
	}
	if p.Alloc(KindProjectile) != -1 {
		t.Fatal("full pool must report exhaustion")
	}

	p.Free(17)
	if id := p.Alloc(KindProjectile); id != 17 {
		t.Fatalf("expected reuse of the only free slot, got %d", id)
	}
}

func TestPoolIdsStableAcrossFrees(t *testing.T) {
	var p Pool
	a := p.Alloc(KindPlayer)
	b := p.Alloc(KindProjectile)
	c := p.Alloc(KindProjectile)

	p.Free(b)

	if e := p.Find(a); e == nil || e.Kind != KindPlayer {
		t.Fatal("freeing one slot must not disturb other ids")
	}
	if e := p.Find(c); e == nil || e.Kind != KindProjectile {
		t.Fatal("ids above a freed slot stay valid")
	}
}
