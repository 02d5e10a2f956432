// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"etmove/conlog"
	"etmove/math"
	"etmove/math/vec"
)

const (
	leafEmpty = -1
	leafSolid = -2
)

type hullPlane struct {
	Normal vec.Vec3
	Dist   float32
	Type   int
}

type clipNode struct {
	Plane    int
	Children [2]int
}

// boxHull is a six node clip hull around an axis aligned box. It lives on
// the stack of a single trace so concurrent traces never share it.
type boxHull struct {
	planes [6]hullPlane
	nodes  [6]clipNode
}

func newBoxHull(mins, maxs vec.Vec3) boxHull {
	var h boxHull
	for i := 0; i < 6; i++ {
		side := i & 1
		h.nodes[i].Plane = i
		h.nodes[i].Children[side] = leafEmpty
		if i == 5 {
			h.nodes[i].Children[side^1] = leafSolid
		} else {
			h.nodes[i].Children[side^1] = i + 1
		}
		axis := i >> 1
		h.planes[i].Type = axis
		h.planes[i].Normal[axis] = 1
		if side == 0 {
			h.planes[i].Dist = maxs[axis]
		} else {
			h.planes[i].Dist = mins[axis]
		}
	}
	return h
}

func (h *boxHull) dist(num int, p vec.Vec3) float32 {
	plane := &h.planes[h.nodes[num].Plane]
	if plane.Type < 3 {
		return p[plane.Type] - plane.Dist
	}
	return vec.DoublePrecDot(plane.Normal, p) - plane.Dist
}

func (h *boxHull) PointContents(num int, p vec.Vec3) int {
	for num >= 0 {
		if h.dist(num, p) < 0 {
			num = h.nodes[num].Children[1]
		} else {
			num = h.nodes[num].Children[0]
		}
	}
	return num
}

func (h *boxHull) RecursiveCheck(num int, p1f, p2f float32, p1, p2 vec.Vec3, trace *Trace) bool {
	const epsilon = 0.03125 // (1/32) to keep floating point happy
	if num < 0 {
		if num != leafSolid {
			trace.AllSolid = false
		} else {
			trace.StartSolid = true
		}
		return true
	}
	node := &h.nodes[num]
	plane := &h.planes[node.Plane]
	t1, t2 := h.dist(num, p1), h.dist(num, p2)
	if t1 >= 0 && t2 >= 0 {
		return h.RecursiveCheck(node.Children[0], p1f, p2f, p1, p2, trace)
	}
	if t1 < 0 && t2 < 0 {
		return h.RecursiveCheck(node.Children[1], p1f, p2f, p1, p2, trace)
	}

	// put the crosspoint epsilon pixels on the near side
	frac := func() float32 {
		d := t1 - t2
		if t1 < 0 {
			return (t1 + epsilon) / d
		}
		return (t1 - epsilon) / d
	}()
	frac = math.Clamp(0, frac, 1)
	midf := math.Lerp(p1f, p2f, frac)
	mid := vec.Lerp(p1, p2, frac)
	side := func() int {
		if t1 < 0 {
			return 1
		}
		return 0
	}()
	// move up to the node
	if !h.RecursiveCheck(node.Children[side], p1f, midf, p1, mid, trace) {
		return false
	}
	if h.PointContents(node.Children[side^1], mid) != leafSolid {
		return h.RecursiveCheck(node.Children[side^1], midf, p2f, mid, p2, trace)
	}
	if trace.AllSolid {
		return false // never got out of the solid area
	}
	// the other side of the node is solid, this is the impact point
	if side == 0 {
		trace.Plane.Normal = plane.Normal
		trace.Plane.Dist = plane.Dist
	} else {
		trace.Plane.Normal = vec.Sub(vec.Vec3{}, plane.Normal)
		trace.Plane.Dist = -plane.Dist
	}
	for h.PointContents(0, mid) == leafSolid {
		// shouldn't really happen, but does occasionally
		frac -= 0.1
		if frac < 0 {
			trace.Fraction = midf
			trace.EndPos = mid
			conlog.DPrintf("backup past 0\n")
			return false
		}
		midf = math.Lerp(p1f, p2f, frac)
		mid = vec.Lerp(p1, p2, frac)
	}
	trace.Fraction = midf
	trace.EndPos = mid

	return false
}
