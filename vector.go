package signboard

import (
	"strconv"

	"github.com/solarlune/signboard/math32"
)

// WorldRight represents a unit vector in the global direction of WorldRight on the right-handed OpenGL coordinate system (+X).
var WorldRight = NewVector3(1, 0, 0)

// WorldUp represents a unit vector in the global direction of WorldUp on the right-handed OpenGL coordinate system (+Y).
var WorldUp = NewVector3(0, 1, 0)

// WorldBackward represents a unit vector pointing backwards, towards the default camera position (+Z).
var WorldBackward = NewVector3(0, 0, 1)

// Vector3 represents a 3D Vector, which can be used for usual 3D applications (position, direction, velocity, etc).
// Any Vector3 functions that modify the calling Vector3 return copies of the modified Vector3, meaning you can do method-chaining easily.
type Vector3 struct {
	X float32 // The X (1st) component of the Vector
	Y float32 // The Y (2nd) component of the Vector
	Z float32 // The Z (3rd) component of the Vector
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (vec Vector3) String() string {
	return "{" + strconv.FormatFloat(float64(vec.X), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Y), 'f', -1, 32) + ", " +
		strconv.FormatFloat(float64(vec.Z), 'f', -1, 32) + "}"
}

// Add returns a copy of the calling vector, added together with the other Vector provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector, with the other Vector subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Cross returns a new Vector, indicating the cross product of the calling Vector and the provided Other Vector.
func (vec Vector3) Cross(other Vector3) Vector3 {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vector with all components inverted.
func (vec Vector3) Invert() Vector3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the length of the Vector.
func (vec Vector3) Magnitude() float32 {
	return math32.Sqrt(vec.MagnitudeSquared())
}

// MagnitudeSquared returns the squared length of the Vector; this is faster than Magnitude() as it avoids using math.Sqrt().
func (vec Vector3) MagnitudeSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// DistanceTo returns the distance from the calling Vector to the other Vector provided.
func (vec Vector3) DistanceTo(other Vector3) float32 {
	return vec.Sub(other).Magnitude()
}

// Unit returns a copy of the Vector, normalized (set to be of unit length).
// It does not alter the W component of the Vector.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	if l < 1e-8 || l == 1 {
		// If it's 0, then don't modify the vector
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Scale scales a Vector by the given scalar.
func (vec Vector3) Scale(scalar float32) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Divide divides a Vector by the given scalar.
func (vec Vector3) Divide(scalar float32) Vector3 {
	vec.X /= scalar
	vec.Y /= scalar
	vec.Z /= scalar
	return vec
}

// Dot returns the dot product of a Vector and another Vector.
func (vec Vector3) Dot(other Vector3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Equals returns true if the two Vectors are close enough in all values (excluding W).
func (vec Vector3) Equals(other Vector3) bool {

	eps := float32(1e-4)

	return math32.Abs(vec.X-other.X) <= eps &&
		math32.Abs(vec.Y-other.Y) <= eps &&
		math32.Abs(vec.Z-other.Z) <= eps

}

// IsZero returns true if the values in the Vector are extremely close to 0 (excluding W).
func (vec Vector3) IsZero() bool {
	return vec.Equals(Vector3{})
}

// Angle returns the angle in radians between the calling Vector and the provided other Vector.
func (vec Vector3) Angle(other Vector3) float32 {
	d := vec.Unit().Dot(other.Unit())
	return math32.Acos(math32.Clamp(d, -1, 1))
}

// Min returns a Vector composed of the smallest components of both Vectors.
func (vec Vector3) Min(other Vector3) Vector3 {
	vec.X = math32.Min(vec.X, other.X)
	vec.Y = math32.Min(vec.Y, other.Y)
	vec.Z = math32.Min(vec.Z, other.Z)
	return vec
}

// Max returns a Vector composed of the largest components of both Vectors.
func (vec Vector3) Max(other Vector3) Vector3 {
	vec.X = math32.Max(vec.X, other.X)
	vec.Y = math32.Max(vec.Y, other.Y)
	vec.Z = math32.Max(vec.Z, other.Z)
	return vec
}

// Vector4 represents a 4D Vector; it's mainly used for matrix rows and homogeneous (clip-space) coordinates.
type Vector4 struct {
	X, Y, Z, W float32
}

// Magnitude returns the length of the Vector4, including W.
func (vec Vector4) Magnitude() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z + vec.W*vec.W)
}

// Unit returns a copy of the Vector4, normalized.
func (vec Vector4) Unit() Vector4 {
	l := vec.Magnitude()
	if l < 1e-8 {
		return vec
	}
	vec.X, vec.Y, vec.Z, vec.W = vec.X/l, vec.Y/l, vec.Z/l, vec.W/l
	return vec
}

// Invert returns a copy of the Vector4 with all components inverted.
func (vec Vector4) Invert() Vector4 {
	return Vector4{-vec.X, -vec.Y, -vec.Z, -vec.W}
}

// Vector3 drops the W component.
func (vec Vector4) Vector3() Vector3 {
	return Vector3{vec.X, vec.Y, vec.Z}
}

// Vector2 represents a 2D Vector; in signboard, it's used for screen-space and normalized device coordinates.
type Vector2 struct {
	X, Y float32
}

