// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Vec3 is a 3D position or direction. It shares its layout with
// f64.Vec3 and converts to it freely.
type Vec3 f64.Vec3

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float64 { return v[2] }

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Mul returns the vector scaled by s.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// MulVec returns the component-wise product.
func (v Vec3) MulVec(w Vec3) Vec3 {
	return Vec3{v[0] * w[0], v[1] * w[1], v[2] * w[2]}
}

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Length returns the length of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if v has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Lerp interpolates linearly: t=0 returns v, t=1 returns w.
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return v.Add(w.Sub(v).Mul(t))
}

// InUnitCube reports whether every component lies in [0, 1].
func (v Vec3) InUnitCube() bool {
	return v[0] >= 0 && v[0] <= 1 &&
		v[1] >= 0 && v[1] <= 1 &&
		v[2] >= 0 && v[2] <= 1
}

// IsZero reports whether v is the zero vector.
func (v Vec3) IsZero() bool {
	return v == Vec3{}
}

// Approx reports whether two vectors are equal within epsilon per component.
func (v Vec3) Approx(w Vec3, epsilon float64) bool {
	return math.Abs(v[0]-w[0]) < epsilon &&
		math.Abs(v[1]-w[1]) < epsilon &&
		math.Abs(v[2]-w[2]) < epsilon
}
