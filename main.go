package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/qkarena/qk/collision"
	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/netloop"
	"github.com/qkarena/qk/predict"
	"github.com/qkarena/qk/server"
	"github.com/qkarena/qk/settings"
)

func main() {
	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}
	lg.Level = logrus.DebugLevel

	cfg := readSettings(lg)
	md := demoMap()

	sv := server.New(lg, cfg, md)

	client := netloop.Connect(sv, game.TeamAlpha)
	if client == nil {
		lg.Fatal("server refused the loopback client")
	}
	input := &scriptedInput{}
	pred := predict.New(collision.New(md.Brushes), client, input, false)

	sv.StartMatch()
	lg.Info("loopback match running")

	const frameDT = float32(1.0 / 240.0)
	ticker := time.NewTicker(time.Second / 240)
	defer ticker.Stop()

	deadline := time.Now().Add(10 * time.Second)
	for range ticker.C {
		if time.Now().After(deadline) {
			break
		}
		input.frame++
		sv.Advance(frameDT)
		pred.Tick(frameDT)
		pred.Reconcile()

		for _, ev := range sv.DrainEvents() {
			lg.WithFields(logrus.Fields{
				"attacker": ev.Attacker,
				"victim":   ev.Victim,
				"round":    ev.Round,
			}).Info(ev.Kind.String())
		}
	}

	st := pred.Predicted()
	lg.WithFields(logrus.Fields{
		"origin": fmt.Sprintf("%.1f %.1f %.1f", st.Origin.X(), st.Origin.Y(), st.Origin.Z()),
		"speed":  fmt.Sprintf("%.1f", st.HorizontalSpeed()),
		"tick":   sv.Tick(),
	}).Info("loopback match finished")

	client.Disconnect()
}

func readSettings(lg *logrus.Logger) settings.Match {
	const path = "match.toml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			lg.Fatalf("error creating settings: %v", err)
		}
	}
	cfg, err := settings.Load(path)
	if err != nil {
		lg.Fatalf("error reading settings: %v", err)
	}
	return cfg
}

// scriptedInput drives the loopback client with a fixed pattern: run
// forward, hop continuously, and strafe left and right in alternating
// stretches.
type scriptedInput struct {
	frame int
	pitch float32
	yaw   float32
}

func (s *scriptedInput) BuildCommand(serverTime uint32) game.UserCommand {
	cmd := game.UserCommand{
		ServerTime:  serverTime,
		ForwardMove: 1,
		Pitch:       s.pitch,
		Yaw:         s.yaw,
		Buttons:     game.ButtonJump,
	}
	if (s.frame/120)%2 == 0 {
		cmd.SideMove = 1
	} else {
		cmd.SideMove = -1
	}
	return cmd
}

func (s *scriptedInput) SetAngles(pitch, yaw float32) {
	s.pitch, s.yaw = pitch, yaw
}

// demoMap builds a small box arena: a floor, four walls, a center pillar, a
// staircase, a jump pad and a pair of teleporters.
func demoMap() server.MapData {
	brushes := []collision.BrushDef{
		// floor and ceiling
		collision.BoxBrush(mgl32.Vec3{-1024, -1024, -64}, mgl32.Vec3{1024, 1024, 0}),
		collision.BoxBrush(mgl32.Vec3{-1024, -1024, 512}, mgl32.Vec3{1024, 1024, 576}),
		// walls
		collision.BoxBrush(mgl32.Vec3{-1088, -1024, 0}, mgl32.Vec3{-1024, 1024, 512}),
		collision.BoxBrush(mgl32.Vec3{1024, -1024, 0}, mgl32.Vec3{1088, 1024, 512}),
		collision.BoxBrush(mgl32.Vec3{-1024, -1088, 0}, mgl32.Vec3{1024, -1024, 512}),
		collision.BoxBrush(mgl32.Vec3{-1024, 1024, 0}, mgl32.Vec3{1024, 1088, 512}),
		// center pillar
		collision.BoxBrush(mgl32.Vec3{-64, -64, 0}, mgl32.Vec3{64, 64, 256}),
	}
	// staircase up to a ledge on the east wall
	for i := 0; i < 8; i++ {
		x0 := float32(640 + i*48)
		z1 := float32((i + 1) * 16)
		brushes = append(brushes,
			collision.BoxBrush(mgl32.Vec3{x0, -128, 0}, mgl32.Vec3{x0 + 48, 128, z1}))
	}

	return server.MapData{
		Brushes: brushes,
		Teleporters: []server.Teleporter{
			{
				Mins:    mgl32.Vec3{-992, -992, 0},
				Maxs:    mgl32.Vec3{-928, -928, 128},
				Dest:    mgl32.Vec3{928, 928, 1},
				DestYaw: 225,
			},
		},
		JumpPads: []server.JumpPad{
			{
				Mins:   mgl32.Vec3{-512, 448, 0},
				Maxs:   mgl32.Vec3{-448, 512, 16},
				Target: mgl32.Vec3{0, 0, 264},
			},
		},
		SpawnsAlpha: []server.SpawnPoint{
			{Origin: mgl32.Vec3{-768, 0, 25}, Yaw: 0},
			{Origin: mgl32.Vec3{-768, 512, 25}, Yaw: 315},
		},
		SpawnsBeta: []server.SpawnPoint{
			{Origin: mgl32.Vec3{768, 0, 25}, Yaw: 180},
			{Origin: mgl32.Vec3{768, -512, 25}, Yaw: 135},
		},
	}
}
