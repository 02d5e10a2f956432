// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/cm"
	"etmove/math/vec"

	"github.com/pkg/errors"
)

// stepContext is the scratch state of a single movement step. It is built
// fresh by Single and handed down by pointer.
type stepContext struct {
	forward, right, up vec.Vec3
	frametime          float32
	msec               int32

	walking     bool
	groundPlane bool
	groundTrace cm.Trace

	impactSpeed float32

	previousOrigin     vec.Vec3
	previousVelocity   vec.Vec3
	previousWaterLevel int

	ladder        bool
	ladderForward bool
	ladderVec     vec.Vec3
}

const maxClipPlanes = 5

var errPlaneOverflow = errors.New("too many clip planes")

// clipPlanes is the bounded set of planes a slide must not re-enter.
type clipPlanes struct {
	normals [maxClipPlanes]vec.Vec3
	n       int
}

func (c *clipPlanes) add(normal vec.Vec3) error {
	if c.n == maxClipPlanes {
		return errPlaneOverflow
	}
	c.normals[c.n] = normal
	c.n++
	return nil
}

func (c *clipPlanes) full() bool {
	return c.n == maxClipPlanes
}

func (c *clipPlanes) all() []vec.Vec3 {
	return c.normals[:c.n]
}

// similar returns the index of a plane nearly parallel to normal or -1.
func (c *clipPlanes) similar(normal vec.Vec3) int {
	for i, p := range c.all() {
		if vec.Dot(normal, p) > 0.99 {
			return i
		}
	}
	return -1
}
