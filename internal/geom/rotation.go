package geom

// Rotation is the canonical (pitch, yaw, roll) orientation in radians.
// Parser adapters may hand the normalization layer either this shape or a
// legacy three-component vector (x=pitch, y=yaw, z=roll); translating the
// legacy shape happens once, at ingress, in the normalize package. Nothing
// downstream of normalization ever sees the legacy form.
type Rotation struct {
	Pitch, Yaw, Roll float64
}

// FromLegacyVec3 interprets a legacy (x, y, z) rotation vector as
// (pitch, yaw, roll).
func FromLegacyVec3(v Vec3) Rotation {
	return Rotation{Pitch: v.X, Yaw: v.Y, Roll: v.Z}
}

const twoPi = 2 * 3.141592653589793

// NormalizeAngle wraps a radian angle into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > 3.141592653589793 {
		a -= twoPi
	}
	for a <= -3.141592653589793 {
		a += twoPi
	}
	return a
}
