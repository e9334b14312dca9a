package physics

import "github.com/go-gl/mathgl/mgl32"

// DebugKind tags a debug trace record.
type DebugKind uint8

const (
	DebugBump DebugKind = iota
	DebugCornerTrap
	DebugCornered
	DebugPrimalReject
	DebugStepUp
	DebugDepenetrate
)

// DebugRecord is one slide-move decision captured for diagnostics.
type DebugRecord struct {
	Kind        DebugKind
	CommandTime uint32
	Normal      mgl32.Vec3
	Offset      mgl32.Vec3
}

const debugTraceSize = 256

// DebugTrace is a fixed ring of recent slide-move decisions. Physics is the
// only writer; diagnostics read it. Single-reader/single-writer tearing is
// acceptable, this data is never fed back into simulation.
type DebugTrace struct {
	records [debugTraceSize]DebugRecord
	head    int
	size    int
}

func (d *DebugTrace) record(rec DebugRecord) {
	if d == nil {
		return
	}
	d.records[d.head] = rec
	d.head = (d.head + 1) % debugTraceSize
	if d.size < debugTraceSize {
		d.size++
	}
}

// Snapshot copies out the buffered records, oldest first.
func (d *DebugTrace) Snapshot() []DebugRecord {
	if d == nil || d.size == 0 {
		return nil
	}
	out := make([]DebugRecord, 0, d.size)
	start := (d.head - d.size + debugTraceSize) % debugTraceSize
	for i := 0; i < d.size; i++ {
		out = append(out, d.records[(start+i)%debugTraceSize])
	}
	return out
}
