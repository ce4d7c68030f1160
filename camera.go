// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import "math"

// BoundingBox is an axis-aligned box in world space. The volume's unit
// cube is stretched over it.
type BoundingBox struct {
	Min, Max Vec3
}

// CenteredBox returns the box of a grid of the given extent centered on the
// origin, one world unit per voxel.
func CenteredBox(d Dims) BoundingBox {
	h := V3(float64(d.X)/2, float64(d.Y)/2, float64(d.Z)/2)
	return BoundingBox{Min: h.Neg(), Max: h}
}

// Size returns the edge lengths.
func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point.
func (b BoundingBox) Center() Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Valid reports whether the box has positive size along every axis.
func (b BoundingBox) Valid() bool {
	s := b.Size()
	return s[0] > 0 && s[1] > 0 && s[2] > 0
}

// ToUnit maps a world position into unit-cube coordinates.
func (b BoundingBox) ToUnit(p Vec3) Vec3 {
	s := b.Size()
	d := p.Sub(b.Min)
	return Vec3{d[0] / s[0], d[1] / s[1], d[2] / s[2]}
}

// ToUnitDir maps a world direction into unit-cube coordinates.
func (b BoundingBox) ToUnitDir(v Vec3) Vec3 {
	s := b.Size()
	return Vec3{v[0] / s[0], v[1] / s[1], v[2] / s[2]}
}

// Intersect returns the parameters where the ray origin + t*dir enters and
// leaves the box. ok is false when the ray misses or the box lies entirely
// behind the origin. tNear is never negative.
func (b BoundingBox) Intersect(origin, dir Vec3) (tNear, tFar float64, ok bool) {
	tNear, tFar = 0, math.Inf(1)
	for a := range 3 {
		if dir[a] == 0 {
			if origin[a] < b.Min[a] || origin[a] > b.Max[a] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / dir[a]
		t0 := (b.Min[a] - origin[a]) * inv
		t1 := (b.Max[a] - origin[a]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = max(tNear, t0)
		tFar = min(tFar, t1)
		if tNear > tFar {
			return 0, 0, false
		}
	}
	return tNear, tFar, true
}

// Camera is a pinhole camera looking from Eye toward Target.
type Camera struct {
	Eye    Vec3
	Target Vec3
	Up     Vec3
	// FovY is the vertical field of view in degrees.
	FovY float64
}

// DefaultFovY is the vertical field of view used by OrbitCamera.
const DefaultFovY = 45

// OrbitCamera returns a camera on a sphere around box, at the given
// azimuth and elevation in degrees, far enough to frame the whole box.
func OrbitCamera(box BoundingBox, azimuth, elevation float64) Camera {
	center := box.Center()
	radius := box.Size().Length() / 2
	dist := radius / math.Sin(DefaultFovY*math.Pi/360) * 1.1

	az := azimuth * math.Pi / 180
	el := elevation * math.Pi / 180
	offset := V3(
		math.Cos(el)*math.Sin(az),
		math.Sin(el),
		math.Cos(el)*math.Cos(az),
	)
	return Camera{
		Eye:    center.Add(offset.Mul(dist)),
		Target: center,
		Up:     V3(0, 1, 0),
		FovY:   DefaultFovY,
	}
}

// Basis returns the camera's forward, right and up unit vectors.
func (c Camera) Basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Eye).Normalize()
	right = forward.Cross(c.Up).Normalize()
	if right.IsZero() {
		// Up is parallel to the view direction; pick any perpendicular.
		right = forward.Cross(V3(1, 0, 0)).Normalize()
		if right.IsZero() {
			right = forward.Cross(V3(0, 0, 1)).Normalize()
		}
	}
	up = right.Cross(forward)
	return forward, right, up
}

// TanHalfFov returns tan(FovY/2). Out of range fields of view fall back to
// DefaultFovY.
func (c Camera) TanHalfFov() float64 {
	fov := c.FovY
	if fov <= 0 || fov >= 180 {
		fov = DefaultFovY
	}
	return math.Tan(fov * math.Pi / 360)
}

// Rays returns a generator of world-space primary rays for an image of the
// given size. The returned function maps pixel (x, y), with y down, to the
// ray through the pixel center. Directions are unit length.
func (c Camera) Rays(width, height int) func(x, y int) Ray {
	forward, right, up := c.Basis()
	tanHalf := c.TanHalfFov()
	aspect := float64(width) / float64(height)

	return func(x, y int) Ray {
		u := (2*(float64(x)+0.5)/float64(width) - 1) * tanHalf * aspect
		v := (1 - 2*(float64(y)+0.5)/float64(height)) * tanHalf
		dir := forward.Add(right.Mul(u)).Add(up.Mul(v)).Normalize()
		return Ray{Origin: c.Eye, Dir: dir}
	}
}
