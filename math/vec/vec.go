// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	PITCH = 0
	YAW   = 1
	ROLL  = 2
)

// Vec3 is a point or direction in world units. Products inside sums are
// wrapped in explicit float32 conversions so the compiler never fuses them
// into FMA instructions; results must match bit for bit on every GOARCH.
type Vec3 [3]float32

func FromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

func (v Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Length returns the length of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// MA returns a + s*b
func MA(a Vec3, s float32, b Vec3) Vec3 {
	return Vec3{
		a[0] + float32(s*b[0]),
		a[1] + float32(s*b[1]),
		a[2] + float32(s*b[2]),
	}
}

// Scale returns the vector multiplied by the skalar s
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{float32(v[0] * s), float32(v[1] * s), float32(v[2] * s)}
}

// Normalize returns the normalized vector
func (v Vec3) Normalize() Vec3 {
	n, _ := v.NormalizeLen()
	return n
}

// NormalizeLen returns the normalized vector and the length it had before.
// The zero vector stays zero.
func (v Vec3) NormalizeLen() (Vec3, float32) {
	l := v.Length()
	if l == 0 {
		return Vec3{}, 0
	}
	return v.Scale(1 / l), l
}

// Dot returns a dot b
func Dot(a Vec3, b Vec3) float32 {
	return float32(a[0]*b[0]) + float32(a[1]*b[1]) + float32(a[2]*b[2])
}

// DoublePrecDot return a dot b calculated in double precision
func DoublePrecDot(a Vec3, b Vec3) float32 {
	p := func(x, y float32) float64 {
		return float64(x) * float64(y)
	}
	return float32(p(a[0], b[0]) + p(a[1], b[1]) + p(a[2], b[2]))
}

// Cross returns a cross b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		float32(a[1]*b[2]) - float32(a[2]*b[1]),
		float32(a[2]*b[0]) - float32(a[0]*b[2]),
		float32(a[0]*b[1]) - float32(a[1]*b[0]),
	}
}

// Lerp computes a weighted average between two points
func Lerp(a, b Vec3, frac float32) Vec3 {
	return Vec3{
		a[0] + float32(frac*(b[0]-a[0])),
		a[1] + float32(frac*(b[1]-a[1])),
		a[2] + float32(frac*(b[2]-a[2])),
	}
}

// Equal returns a == b
func Equal(a Vec3, b Vec3) bool {
	return a == b
}

// Finite reports whether no component is NaN or infinite.
func (v Vec3) Finite() bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func minmax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

func MinMax(a, b Vec3) (Vec3, Vec3) {
	var r, s Vec3
	r[0], s[0] = minmax(a[0], b[0])
	r[1], s[1] = minmax(a[1], b[1])
	r[2], s[2] = minmax(a[2], b[2])
	return r, s
}

func AngleVectors(angles Vec3) (forward, right, up Vec3) {
	deg := math32.Pi * 2 / 360
	sp, cp := math32.Sincos(angles[PITCH] * deg)
	sy, cy := math32.Sincos(angles[YAW] * deg)
	sr, cr := math32.Sincos(angles[ROLL] * deg)

	forward = Vec3{cp * cy, cp * sy, -sp}
	right = Vec3{
		(-1*sr*sp*cy + -1*cr*-sy),
		(-1*sr*sp*sy + -1*cr*cy),
		-1 * sr * cp,
	}
	up = Vec3{
		(cr*sp*cy + -sr*-sy),
		(cr*sp*sy + -sr*cy),
		cr * cp,
	}
	return
}

// ToAngles returns the pitch and yaw that point along v.
func ToAngles(v Vec3) Vec3 {
	var yaw, pitch float32
	if v[1] == 0 && v[0] == 0 {
		if v[2] > 0 {
			pitch = 90
		} else {
			pitch = 270
		}
		return Vec3{-pitch, 0, 0}
	}
	switch {
	case v[0] != 0:
		yaw = math32.Atan2(v[1], v[0]) * 180 / math32.Pi
	case v[1] > 0:
		yaw = 90
	default:
		yaw = 270
	}
	if yaw < 0 {
		yaw += 360
	}
	forward := math32.Sqrt(float32(v[0]*v[0]) + float32(v[1]*v[1]))
	pitch = math32.Atan2(v[2], forward) * 180 / math32.Pi
	if pitch < 0 {
		pitch += 360
	}
	return Vec3{-pitch, yaw, 0}
}
