package predict

import (
	"github.com/qkarena/qk/assert"
	"github.com/qkarena/qk/collision"
	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/physics"
	"github.com/qkarena/qk/player"
)

// RingSize is the command/state history depth. Acks older than this are
// stale and reconciliation falls back to adopting the snapshot outright.
const RingSize = 128

// NetClient is the netcode boundary prediction talks through. Implemented
// in-process by netloop and by the real transport outside the core.
type NetClient interface {
	// SendInput enqueues one sequenced command for the server.
	SendInput(sc game.SequencedCommand)
	// ServerPlayerState returns the latest authoritative snapshot, if any
	// has arrived yet.
	ServerPlayerState() (player.Snapshot, bool)
	// ServerCmdAck returns the highest command sequence the server has
	// acknowledged.
	ServerCmdAck() uint32
	// ServerTick returns the current server tick, used to timestamp
	// commands when simulating loopback.
	ServerTick() uint32
}

// InputSource is the input boundary: it samples a command per tick and
// accepts view-angle snaps when the server teleports the player.
type InputSource interface {
	BuildCommand(serverTime uint32) game.UserCommand
	SetAngles(pitch, yaw float32)
}

type cmdEntry struct {
	cmd game.UserCommand
	seq uint32
}

type stateEntry struct {
	state player.State
	seq   uint32
}

// Predictor simulates the local player forward under the same physics as
// the server and reconciles against authoritative snapshots. The predicted
// state at each sequence is always the result of applying cmdRing[seq] to
// stateRing[seq-1], or to the last adopted snapshot right after a replay.
type Predictor struct {
	sim   physics.Simulator
	net   NetClient
	input InputSource

	cmdRing   [RingSize]cmdEntry
	stateRing [RingSize]stateEntry

	predicted player.State
	seeded    bool

	seq               uint32
	lastReconciledAck uint32

	accum game.Accumulator

	// remote is true when the server runs on another machine and command
	// timestamps derive from the local sequence instead of the server tick.
	remote bool
}

// New builds a predictor over the given world and boundaries.
func New(world *collision.World, net NetClient, input InputSource, remote bool) *Predictor {
	assert.IsTrue(net != nil, "predict: nil net client")
	assert.IsTrue(input != nil, "predict: nil input source")

	return &Predictor{
		sim:    physics.Simulator{World: world},
		net:    net,
		input:  input,
		remote: remote,
	}
}

// Tick banks real frame time and runs however many prediction ticks are
// due, sampling and sending one command per tick.
func (p *Predictor) Tick(dt float32) {
	p.accum.Add(dt)
	for n := p.accum.Drain(); n > 0; n-- {
		p.tickOnce()
	}
}

func (p *Predictor) tickOnce() {
	var serverTime uint32
	if p.remote {
		serverTime = game.ServerTimeMillis(p.seq)
	} else {
		serverTime = game.ServerTimeMillis(p.net.ServerTick())
	}

	cmd := p.input.BuildCommand(serverTime)
	p.seq++
	p.cmdRing[p.seq%RingSize] = cmdEntry{cmd: cmd, seq: p.seq}
	p.net.SendInput(game.SequencedCommand{Sequence: p.seq, Cmd: cmd})

	if !p.seeded {
		snap, ok := p.net.ServerPlayerState()
		if !ok {
			return
		}
		p.predicted = snap.State
		p.seeded = true
	}

	p.sim.Simulate(&p.predicted.MovementState, cmd)
	p.predicted.LastCmd = cmd
	p.stateRing[p.seq%RingSize] = stateEntry{state: p.predicted, seq: p.seq}
}

// maxPredictionErrorSqr is the squared origin divergence accepted without a
// replay, in world units squared.
const maxPredictionErrorSqr = float32(0.1)

// Reconcile folds the latest authoritative snapshot into the predicted
// state, replaying unacknowledged commands when the prediction at the
// acknowledged sequence diverged. Running it twice with the same snapshot
// is a no-op the second time.
func (p *Predictor) Reconcile() {
	snap, ok := p.net.ServerPlayerState()
	if !ok {
		return
	}
	ack := p.net.ServerCmdAck()
	if ack <= p.lastReconciledAck {
		return
	}

	if !p.seeded {
		p.predicted = snap.State
		p.seeded = true
		p.lastReconciledAck = ack
		return
	}

	// Non-positional authoritative fields always win, replay or not.
	p.predicted.SyncGameplay(&snap.State)

	// A flipped teleport bit means the server relocated the player; snap
	// the local view angles to the server's or the next commands would
	// instantly yank the redirected velocity back.
	if snap.State.TeleportBit != p.predicted.TeleportBit {
		p.input.SetAngles(snap.State.Pitch, snap.State.Yaw)
	}

	if ack > p.seq || p.seq-ack >= RingSize {
		// Ack fell out of the ring: nothing left to replay against.
		p.predicted = snap.State
		p.lastReconciledAck = ack
		return
	}

	entry := p.stateRing[ack%RingSize]
	if entry.seq == ack {
		delta := entry.state.Origin.Sub(snap.State.Origin)
		if delta.LenSqr() < maxPredictionErrorSqr {
			p.lastReconciledAck = ack
			return
		}
	}

	// Mispredicted: adopt the snapshot and replay everything newer.
	p.predicted = snap.State
	for seq := ack + 1; seq <= p.seq; seq++ {
		ce := p.cmdRing[seq%RingSize]
		if ce.seq != seq {
			break
		}
		p.sim.Simulate(&p.predicted.MovementState, ce.cmd)
		p.predicted.LastCmd = ce.cmd
		p.stateRing[seq%RingSize] = stateEntry{state: p.predicted, seq: seq}
	}
	p.lastReconciledAck = ack
}

// Predicted returns a copy of the current predicted player state.
func (p *Predictor) Predicted() player.State {
	return p.predicted
}

// Seq returns the sequence of the most recently predicted command.
func (p *Predictor) Seq() uint32 {
	return p.seq
}

// Alpha returns the interpolation fraction between the last two predicted
// ticks for rendering.
func (p *Predictor) Alpha() float32 {
	return p.accum.Alpha()
}
