package signboard

import "github.com/solarlune/signboard/math32"

// Quaternion is a rotation given as x, y, z, w (the layout glTF uses).
type Quaternion struct {
	X, Y, Z, W float32
}

func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x, y, z, w}
}

func (quat Quaternion) Dot(other Quaternion) float32 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Unit returns the Quaternion normalized to unit length. A zero Quaternion becomes the identity rotation.
func (quat Quaternion) Unit() Quaternion {
	l := math32.Sqrt(quat.Dot(quat))
	if l < 1e-8 {
		return Quaternion{0, 0, 0, 1}
	}
	return Quaternion{quat.X / l, quat.Y / l, quat.Z / l, quat.W / l}
}

// Matrix4 returns the rotation Matrix4 of the Quaternion, which should be of unit length.
func (quat Quaternion) Matrix4() Matrix4 {

	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y*y+z*z)
	mat[0][1] = 2 * (x*y + z*w)
	mat[0][2] = 2 * (x*z - y*w)

	mat[1][0] = 2 * (x*y - z*w)
	mat[1][1] = 1 - 2*(x*x+z*z)
	mat[1][2] = 2 * (y*z + x*w)

	mat[2][0] = 2 * (x*z + y*w)
	mat[2][1] = 2 * (y*z - x*w)
	mat[2][2] = 1 - 2*(x*x+y*y)

	return mat

}
