package server

import (
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/qkarena/qk/collision"
	"github.com/qkarena/qk/entity"
	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/settings"
)

func testLogger() *logrus.Logger {
	lg := logrus.New()
	lg.Out = io.Discard
	return lg
}

func testSettings() settings.Match {
	return settings.Match{
		RoundsToWin:     2,
		RoundTimeMillis: 90_000,
		CountdownMillis: 100,
		RoundEndMillis:  100,
		TeamSize:        4,
	}
}

// testMap is an open floor with one spawn per team facing each other.
func testMap() MapData {
	return MapData{
		Brushes: []collision.BrushDef{
			collision.BoxBrush(mgl32.Vec3{-2048, -2048, -64}, mgl32.Vec3{2048, 2048, 0}),
		},
		SpawnsAlpha: []SpawnPoint{{Origin: mgl32.Vec3{-500, 0, 24.2}, Yaw: 0}},
		SpawnsBeta:  []SpawnPoint{{Origin: mgl32.Vec3{500, 0, 24.2}, Yaw: 180}},
	}
}

func testServer() *Server {
	return New(testLogger(), testSettings(), testMap())
}

// startDuel connects one player per team and forces live play.
func startDuel(sv *Server) (alpha, beta int32) {
	alpha = sv.Connect(game.TeamAlpha)
	beta = sv.Connect(game.TeamBeta)
	sv.round.Phase = RoundPlaying
	sv.round.TimerMillis = sv.cfg.RoundTimeMillis
	sv.countAlive()
	return alpha, beta
}

func TestConnectAssignsSlots(t *testing.T) {
	sv := testServer()

	a := sv.Connect(game.TeamAlpha)
	b := sv.Connect(game.TeamBeta)
	if a != 0 || b != 1 {
		t.Fatalf("expected slots 0 and 1, got %d and %d", a, b)
	}

	st, ok := sv.PlayerState(a)
	if !ok {
		t.Fatal("connected player should have state")
	}
	if st.Alive != game.AliveStateAlive {
		t.Fatal("connecting should spawn the player")
	}
	if st.Origin != (mgl32.Vec3{-500, 0, 24.2}) {
		t.Fatalf("expected the alpha spawn, got %v", st.Origin)
	}
}

func TestDisconnectFreesSlot(t *testing.T) {
	sv := testServer()
	a := sv.Connect(game.TeamAlpha)
	sv.Disconnect(a)

	if _, ok := sv.PlayerState(a); ok {
		t.Fatal("disconnected player should have no state")
	}
	if sv.pool.Count(entity.KindPlayer) != 0 {
		t.Fatal("disconnect should free the pool entity")
	}

	// The slot is reusable.
	if again := sv.Connect(game.TeamBeta); again != a {
		t.Fatalf("expected slot reuse, got %d", again)
	}
}

func TestServerFullRefusesConnect(t *testing.T) {
	cfg := testSettings()
	cfg.TeamSize = 0
	sv := New(testLogger(), cfg, testMap())
	for i := 0; i < game.MaxClients; i++ {
		team := game.TeamAlpha
		if i%2 == 1 {
			team = game.TeamBeta
		}
		if sv.Connect(team) < 0 {
			t.Fatalf("connect %d refused below capacity", i)
		}
	}
	if sv.Connect(game.TeamBeta) != -1 {
		t.Fatal("expected a full server to refuse")
	}
}

func TestTeamSizeCapsConnect(t *testing.T) {
	sv := testServer()
	for i := int32(0); i < 4; i++ {
		if sv.Connect(game.TeamAlpha) < 0 {
			t.Fatalf("alpha connect %d refused below team cap", i)
		}
	}
	if sv.Connect(game.TeamAlpha) != -1 {
		t.Fatal("expected a full team to refuse")
	}
	if sv.Connect(game.TeamBeta) < 0 {
		t.Fatal("beta connect refused with an open team")
	}
}

func TestCommandAckAdvances(t *testing.T) {
	sv := testServer()
	a := sv.Connect(game.TeamAlpha)

	sv.EnqueueCommand(a, game.SequencedCommand{Sequence: 7, Cmd: game.UserCommand{ServerTime: 10}})
	sv.TickOnce()

	if ack := sv.CmdAck(a); ack != 7 {
		t.Fatalf("expected ack 7, got %d", ack)
	}

	// Ack never regresses on an out-of-order sequence.
	sv.EnqueueCommand(a, game.SequencedCommand{Sequence: 3, Cmd: game.UserCommand{ServerTime: 20}})
	sv.TickOnce()
	if ack := sv.CmdAck(a); ack != 7 {
		t.Fatalf("ack regressed to %d", ack)
	}
}

func TestEmptyQueueKeepsIntegrating(t *testing.T) {
	sv := testServer()
	a := sv.Connect(game.TeamAlpha)

	// Knock the player into the air, then starve the queue. Gravity must
	// keep pulling them back down without fresh input.
	sv.clients[a].state.Velocity = mgl32.Vec3{0, 0, 400}
	sv.clients[a].state.OnGround = false

	for i := 0; i < 256; i++ {
		sv.TickOnce()
	}

	st, _ := sv.PlayerState(a)
	if !st.OnGround {
		t.Fatalf("player never came back down, origin %v", st.Origin)
	}
}

func TestCommandQueueBounded(t *testing.T) {
	sv := testServer()
	a := sv.Connect(game.TeamAlpha)

	for i := uint32(0); i < 200; i++ {
		sv.EnqueueCommand(a, game.SequencedCommand{Sequence: i + 1})
	}
	if n := len(sv.clients[a].queue); n > maxQueuedCommands {
		t.Fatalf("queue grew to %d, cap is %d", n, maxQueuedCommands)
	}
	// The newest command survives the flood.
	last := sv.clients[a].queue[len(sv.clients[a].queue)-1]
	if last.Sequence != 200 {
		t.Fatalf("expected newest command kept, got %d", last.Sequence)
	}
}

func TestAdvanceRunsFixedTicks(t *testing.T) {
	sv := testServer()
	if n := sv.Advance(game.TickDT * 3.5); n != 3 {
		t.Fatalf("expected 3 ticks, got %d", n)
	}
	if sv.Tick() != 3 {
		t.Fatalf("expected tick 3, got %d", sv.Tick())
	}
}

func TestSnapshotCarriesDigest(t *testing.T) {
	sv := testServer()
	a := sv.Connect(game.TeamAlpha)
	sv.TickOnce()

	snap, ok := sv.Snapshot(a)
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if snap.ServerTick != sv.Tick() {
		t.Fatalf("snapshot tick %d, server tick %d", snap.ServerTick, sv.Tick())
	}
	if snap.Digest != snap.State.Digest() {
		t.Fatal("snapshot digest does not match its state")
	}
}
