package server

import (
	"github.com/sirupsen/logrus"

	"github.com/qkarena/qk/assert"
	"github.com/qkarena/qk/collision"
	"github.com/qkarena/qk/entity"
	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/physics"
	"github.com/qkarena/qk/player"
	"github.com/qkarena/qk/settings"
)

// maxQueuedCommands bounds the per-client input queue. A client flooding
// commands faster than the tick rate loses the oldest ones.
const maxQueuedCommands = 64

type clientSlot struct {
	used  bool
	state player.State

	queue []game.SequencedCommand
	ack   uint32
}

// Server owns the authoritative simulation: world, entity pool, player
// states, triggers, and the round state machine. Everything is mutated only
// by the gameplay tick on a single goroutine.
type Server struct {
	log *logrus.Logger
	cfg settings.Match

	world *collision.World
	sim   physics.Simulator

	pool    entity.Pool
	clients [game.MaxClients]clientSlot

	triggers triggerState
	spawns   spawnState
	round    RoundState
	events   game.EventQueue

	accum game.Accumulator
	tick  uint32
}

// New builds a server for the given map. Jump pads whose target is not
// strictly above the pad are rejected here, once, with a log line.
func New(log *logrus.Logger, cfg settings.Match, md MapData) *Server {
	assert.IsTrue(log != nil, "server: nil logger")

	sv := &Server{
		log:   log,
		cfg:   cfg,
		world: collision.New(md.Brushes),
	}
	sv.sim = physics.Simulator{World: sv.world, Debug: &physics.DebugTrace{}}
	sv.triggers.init(md, log)
	sv.spawns.init(md)
	sv.round = RoundState{Phase: RoundWarmup}

	log.WithFields(logrus.Fields{
		"brushes":     sv.world.BrushCount(),
		"teleporters": len(sv.triggers.teleporters),
		"jumppads":    len(sv.triggers.jumpPads),
	}).Info("map loaded")
	return sv
}

// Connect allocates a client slot and pool entity for a new player.
// Returns -1 when the server, the team, or the pool is full.
func (sv *Server) Connect(team game.Team) int32 {
	if sv.cfg.TeamSize > 0 && sv.teamCount(team) >= sv.cfg.TeamSize {
		return -1
	}
	for i := int32(0); i < game.MaxClients; i++ {
		if sv.clients[i].used {
			continue
		}
		entID := sv.pool.Alloc(entity.KindPlayer)
		if entID < 0 {
			return -1
		}
		sv.clients[i] = clientSlot{
			used:  true,
			state: player.New(entID, team),
		}
		sv.spawnClient(i)
		sv.log.WithFields(logrus.Fields{"client": i, "team": team.String()}).Info("client connected")
		return i
	}
	return -1
}

func (sv *Server) teamCount(team game.Team) int32 {
	var n int32
	for i := range sv.clients {
		if sv.clients[i].used && sv.clients[i].state.Team == team {
			n++
		}
	}
	return n
}

// Disconnect frees the client's slot and entity. Unknown ids are ignored.
func (sv *Server) Disconnect(client int32) {
	if client < 0 || client >= game.MaxClients || !sv.clients[client].used {
		return
	}
	sv.pool.Free(sv.clients[client].state.EntityID)
	sv.clients[client] = clientSlot{}
	sv.log.WithField("client", client).Info("client disconnected")
}

// EnqueueCommand queues one sequenced input from a client.
func (sv *Server) EnqueueCommand(client int32, sc game.SequencedCommand) {
	if client < 0 || client >= game.MaxClients || !sv.clients[client].used {
		return
	}
	slot := &sv.clients[client]
	if len(slot.queue) >= maxQueuedCommands {
		slot.queue = slot.queue[1:]
	}
	slot.queue = append(slot.queue, sc)
}

// Advance banks real frame time and runs however many fixed ticks are due.
// It returns the number of ticks executed.
func (sv *Server) Advance(dt float32) int {
	sv.accum.Add(dt)
	n := sv.accum.Drain()
	for i := 0; i < n; i++ {
		sv.TickOnce()
	}
	return n
}

// TickOnce runs one fixed gameplay tick. Phase order is strict: movement,
// triggers, projectiles, weapons, round state machine.
func (sv *Server) TickOnce() {
	for i := int32(0); i < game.MaxClients; i++ {
		slot := &sv.clients[i]
		if !slot.used {
			continue
		}
		sv.ingestCommand(slot)
	}

	sv.tickTriggers()
	sv.tickProjectiles()

	for i := int32(0); i < game.MaxClients; i++ {
		if sv.clients[i].used {
			sv.tickWeapon(i)
		}
	}

	sv.tickRound()
	sv.tick++
}

// ingestCommand pops at most one queued command and simulates the player's
// movement with it. With an empty queue the last command is replayed at the
// current server time so gravity and friction keep integrating.
func (sv *Server) ingestCommand(slot *clientSlot) {
	var cmd game.UserCommand
	if len(slot.queue) > 0 {
		sc := slot.queue[0]
		slot.queue = slot.queue[1:]
		cmd = sc.Cmd
		if sc.Sequence > slot.ack {
			slot.ack = sc.Sequence
		}
	} else {
		cmd = slot.state.LastCmd
		cmd.ServerTime = game.ServerTimeMillis(sv.tick)
	}

	sv.sim.Simulate(&slot.state.MovementState, cmd)
	slot.state.LastCmd = cmd
}

// Tick returns the current server tick.
func (sv *Server) Tick() uint32 {
	return sv.tick
}

// Round returns the round state machine's current state.
func (sv *Server) Round() RoundState {
	return sv.round
}

// Alpha returns the render interpolation fraction of the accumulator.
func (sv *Server) Alpha() float32 {
	return sv.accum.Alpha()
}

// DrainEvents hands the tick's gameplay events to the UI layer.
func (sv *Server) DrainEvents() []game.Event {
	return sv.events.Drain()
}

// PlayerState returns a copy of the client's authoritative state.
func (sv *Server) PlayerState(client int32) (player.State, bool) {
	if client < 0 || client >= game.MaxClients || !sv.clients[client].used {
		return player.State{}, false
	}
	return sv.clients[client].state, true
}

// Snapshot builds the authoritative snapshot sent to the given client.
func (sv *Server) Snapshot(client int32) (player.Snapshot, bool) {
	if client < 0 || client >= game.MaxClients || !sv.clients[client].used {
		return player.Snapshot{}, false
	}
	slot := &sv.clients[client]
	return player.Snapshot{
		State:      slot.state,
		Ack:        slot.ack,
		ServerTick: sv.tick,
		Digest:     slot.state.Digest(),
	}, true
}

// CmdAck returns the highest command sequence applied for the client, or 0
// for an unused slot.
func (sv *Server) CmdAck(client int32) uint32 {
	if client < 0 || client >= game.MaxClients || !sv.clients[client].used {
		return 0
	}
	return sv.clients[client].ack
}

// DebugTrace exposes the physics diagnostic ring.
func (sv *Server) DebugTrace() []physics.DebugRecord {
	return sv.sim.Debug.Snapshot()
}

func (sv *Server) clientState(client int32) *player.State {
	if client < 0 || client >= game.MaxClients || !sv.clients[client].used {
		return nil
	}
	return &sv.clients[client].state
}

func (sv *Server) spawnClient(client int32) {
	slot := &sv.clients[client]
	sp := sv.spawns.next(slot.state.Team)
	slot.state.Spawn(sp.Origin, sp.Yaw)
}
