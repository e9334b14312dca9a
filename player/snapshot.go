package player

// Snapshot is the authoritative view of one player shipped to its client.
// Ack is the highest command sequence the server had folded into State when
// the snapshot was taken; the client replays everything newer.
type Snapshot struct {
	State      State
	Ack        uint32
	ServerTick uint32

	// Digest fingerprints State; see State.Digest.
	Digest uint64
}
