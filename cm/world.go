// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"etmove/math/vec"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Brush is an axis aligned solid volume of the world.
type Brush struct {
	Box      cube.BBox
	Contents Contents
	Surface  SurfaceFlags
	// Entity is the entity number reported by traces that hit the brush.
	Entity int
}

// SolidBox returns a world owned solid brush.
func SolidBox(mins, maxs vec.Vec3) Brush {
	return Brush{
		Box:      cube.Box(mins[0], mins[1], mins[2], maxs[0], maxs[1], maxs[2]),
		Contents: ContentsSolid,
		Entity:   EntityNumWorld,
	}
}

// World is an immutable set of brushes. All queries are safe for concurrent
// use.
type World struct {
	brushes []Brush
}

func NewWorld(brushes ...Brush) *World {
	w := &World{brushes: make([]Brush, len(brushes))}
	copy(w.brushes, brushes)
	return w
}

func (w *World) Brushes() []Brush {
	return w.brushes
}

func moveBounds(start, mins, maxs, end vec.Vec3) cube.BBox {
	lo, hi := vec.MinMax(start, end)
	lo = vec.Add(lo, mins)
	hi = vec.Add(hi, maxs)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2]).Grow(1)
}

func clipMoveToBrush(b *Brush, start, mins, maxs, end vec.Vec3) Trace {
	var t Trace
	t.Fraction = 1
	t.AllSolid = true
	t.EndPos = end
	bmin, bmax := vec.FromMgl(b.Box.Min()), vec.FromMgl(b.Box.Max())
	hull := newBoxHull(vec.Sub(bmin, maxs), vec.Sub(bmax, mins))
	hull.RecursiveCheck(0, 0, 1, start, end, &t)
	if t.AllSolid {
		t.StartSolid = true
		t.Fraction = 0
		t.EndPos = start
	}
	if t.Fraction < 1 || t.StartSolid {
		t.EntityNum = b.Entity
		t.Contents = b.Contents
		t.SurfaceFlags = b.Surface
	}
	return t
}

// Trace sweeps the box mins/maxs from start to end against every brush
// whose contents intersect mask. Brushes owned by passEntity are ignored.
func (w *World) Trace(start, mins, maxs, end vec.Vec3, passEntity int, mask Contents) Trace {
	result := Trace{
		Fraction:  1,
		EndPos:    end,
		EntityNum: EntityNumNone,
	}
	bounds := moveBounds(start, mins, maxs, end)
	for i := range w.brushes {
		b := &w.brushes[i]
		if b.Contents&mask == 0 || b.Entity == passEntity {
			continue
		}
		if !bounds.IntersectsWith(b.Box) {
			continue
		}
		t := clipMoveToBrush(b, start, mins, maxs, end)
		if t.AllSolid {
			result = t
			continue
		}
		if t.StartSolid {
			result.StartSolid = true
			if result.EntityNum == EntityNumNone {
				result.EntityNum = t.EntityNum
				result.Contents = t.Contents
			}
		}
		if result.AllSolid || t.Fraction >= result.Fraction {
			continue
		}
		startSolid := result.StartSolid
		result = t
		result.StartSolid = startSolid
	}
	return result
}

func within(b cube.BBox, p mgl32.Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return p[0] >= lo[0] && p[0] <= hi[0] &&
		p[1] >= lo[1] && p[1] <= hi[1] &&
		p[2] >= lo[2] && p[2] <= hi[2]
}

// PointContents returns the union of the contents of all brushes
// containing p. Surfaces count as inside.
func (w *World) PointContents(p vec.Vec3, passEntity int) Contents {
	var c Contents
	mp := p.Mgl()
	for i := range w.brushes {
		b := &w.brushes[i]
		if b.Entity == passEntity {
			continue
		}
		if within(b.Box, mp) {
			c |= b.Contents
		}
	}
	return c
}
