package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// The world is z-up: yaw rotates in the XY plane, pitch tilts the aim above
// or below the horizon. Positive pitch looks down.

// YawVectors returns the horizontal forward and right unit vectors for the
// given yaw in degrees. Pitch never affects horizontal movement.
func YawVectors(yaw float32) (forward, right mgl32.Vec3) {
	rad := mgl32.DegToRad(yaw)
	sy, cy := math32.Sin(rad), math32.Cos(rad)
	forward = mgl32.Vec3{cy, sy, 0}
	right = mgl32.Vec3{sy, -cy, 0}
	return forward, right
}

// AimVector returns the view direction vector for the given yaw and pitch in
// degrees.
func AimVector(yaw, pitch float32) mgl32.Vec3 {
	yawRad, pitchRad := mgl32.DegToRad(yaw), mgl32.DegToRad(pitch)
	cp := math32.Cos(pitchRad)
	return mgl32.Vec3{
		cp * math32.Cos(yawRad),
		cp * math32.Sin(yawRad),
		-math32.Sin(pitchRad),
	}
}

// WrapYaw normalizes a yaw angle to [0, 360).
func WrapYaw(yaw float32) float32 {
	yaw = math32.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	return yaw
}

// WrapYawDelta maps an angle difference into [-180, 180].
func WrapYawDelta(delta float32) float32 {
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Float32ApproxEq determines whether two floating point numbers are close
// enough to each other by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3HzLen returns the horizontal (XY) length of a vector.
func Vec3HzLen(v mgl32.Vec3) float32 {
	return math32.Sqrt(v.X()*v.X() + v.Y()*v.Y())
}

// Vec3HzDistSqr returns the squared horizontal length of a vector.
func Vec3HzDistSqr(v mgl32.Vec3) float32 {
	return v.X()*v.X() + v.Y()*v.Y()
}
