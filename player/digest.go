package player

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Digest returns a 64-bit fingerprint of the fields that must agree between
// server and a correctly predicting client. Snapshots carry it so a client
// can detect desync with one comparison before doing any field-level work,
// and the determinism tests compare digests across independent runs.
func (s *State) Digest() uint64 {
	buf := make([]byte, 0, 96)

	for i := 0; i < 3; i++ {
		buf = appendFloat32(buf, s.Origin[i])
	}
	for i := 0; i < 3; i++ {
		buf = appendFloat32(buf, s.Velocity[i])
	}
	buf = appendFloat32(buf, s.Pitch)
	buf = appendFloat32(buf, s.Yaw)

	flags := byte(0)
	if s.OnGround {
		flags |= 1
	}
	if s.JumpHeld {
		flags |= 2
	}
	flags |= s.TeleportBit << 2
	buf = append(buf, flags, s.SkimTicks, s.SplashSlickTicks, s.AutohopCooldown)

	buf = binary.LittleEndian.AppendUint32(buf, s.CommandTime)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Health))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Armor))
	buf = append(buf, byte(s.Weapon), byte(s.PendingWeapon), byte(s.Team), byte(s.Alive))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.WeaponTime))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.SwitchTime))

	return xxh3.Hash(buf)
}

func appendFloat32(buf []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
}
