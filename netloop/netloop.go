// Package netloop is the in-process loopback implementation of the netcode
// boundary: a client and server in the same process exchange commands and
// snapshots through a msgpack round-trip, so both sides hold genuinely
// independent copies of every state, exactly as they would across a wire.
package netloop

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/qkarena/qk/game"
	"github.com/qkarena/qk/internal"
	"github.com/qkarena/qk/player"
	"github.com/qkarena/qk/server"
)

// Client joins a loopback server and implements predict.NetClient.
type Client struct {
	sv *server.Server
	id int32
}

// Connect joins the loopback server on the given team. It returns nil when
// the server is full.
func Connect(sv *server.Server, team game.Team) *Client {
	id := sv.Connect(team)
	if id < 0 {
		return nil
	}
	return &Client{sv: sv, id: id}
}

// ID returns the server-side client id.
func (c *Client) ID() int32 {
	return c.id
}

// Disconnect releases the client's server slot.
func (c *Client) Disconnect() {
	c.sv.Disconnect(c.id)
}

// SendInput delivers one sequenced command to the server.
func (c *Client) SendInput(sc game.SequencedCommand) {
	var copied game.SequencedCommand
	if err := roundTrip(sc, &copied); err != nil {
		return
	}
	c.sv.EnqueueCommand(c.id, copied)
}

// ServerPlayerState returns the latest authoritative snapshot.
func (c *Client) ServerPlayerState() (player.Snapshot, bool) {
	snap, ok := c.sv.Snapshot(c.id)
	if !ok {
		return player.Snapshot{}, false
	}
	var copied player.Snapshot
	if err := roundTrip(snap, &copied); err != nil {
		return player.Snapshot{}, false
	}
	return copied, true
}

// ServerCmdAck returns the highest command sequence the server has applied.
func (c *Client) ServerCmdAck() uint32 {
	return c.sv.CmdAck(c.id)
}

// ServerTick returns the server's current tick.
func (c *Client) ServerTick() uint32 {
	return c.sv.Tick()
}

// roundTrip encodes in and decodes it into out, forcing a full value copy
// through the wire representation.
func roundTrip(in interface{}, out interface{}) error {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	if err := msgpack.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	return msgpack.NewDecoder(buf).Decode(out)
}
