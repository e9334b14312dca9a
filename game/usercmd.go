package game

// Button bits carried in a UserCommand.
const (
	ButtonAttack uint32 = 1 << iota
	ButtonJump
	ButtonCrouch
	ButtonUse
)

// UserCommand is one tick of sampled player input. It is the only thing a
// client sends to the server, and the only input the movement simulation
// accepts; identical commands must produce identical motion on both sides.
type UserCommand struct {
	ServerTime uint32

	ForwardMove float32
	SideMove    float32

	Pitch float32
	Yaw   float32

	Buttons      uint32
	WeaponSelect WeaponID
}

// Pressed reports whether the given button bit is held in this command.
func (c UserCommand) Pressed(button uint32) bool {
	return c.Buttons&button != 0
}

// SequencedCommand pairs a user command with the client's monotonically
// increasing command sequence number, which the server acknowledges back.
type SequencedCommand struct {
	Sequence uint32
	Cmd      UserCommand
}
