// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"etmove/math/vec"
)

// SlideOutcome tells how a slide move ended.
type SlideOutcome uint8

const (
	// SlideMoved means the whole move was done on the first try.
	SlideMoved SlideOutcome = iota
	// SlideClipped means the velocity was deflected by at least one plane.
	SlideClipped
	// SlideTrapped means the box started inside a solid. Vertical speed is
	// dropped, horizontal speed is kept.
	SlideTrapped
	// SlidePlaneOverflow means more planes were hit than can be tracked.
	// The velocity is zeroed.
	SlidePlaneOverflow
	// SlideCornerStuck means three planes were entered at once. The
	// velocity is zeroed.
	SlideCornerStuck
)

func (o SlideOutcome) String() string {
	switch o {
	case SlideMoved:
		return "moved"
	case SlideClipped:
		return "clipped"
	case SlideTrapped:
		return "trapped"
	case SlidePlaneOverflow:
		return "plane overflow"
	case SlideCornerStuck:
		return "corner stuck"
	}
	return "unknown"
}

type SlideResult struct {
	Outcome SlideOutcome
	Bumps   int
}

// Clipped reports whether the velocity was changed by the world.
func (r SlideResult) Clipped() bool {
	return r.Outcome != SlideMoved
}

const (
	slideBumps      = 4
	slideExtraBumps = 1
)

// slideMove moves the player along its velocity for one frame, sliding
// along every plane it runs into.
func (m *Move) slideMove(sc *stepContext, gravity bool) SlideResult {
	ps := m.PS
	numbumps := slideBumps
	extrabumps := 0

	primal_velocity := ps.Velocity
	var endVelocity vec.Vec3
	if gravity {
		endVelocity = ps.Velocity
		endVelocity[2] -= float32(float32(ps.Gravity) * sc.frametime)
		ps.Velocity[2] = float32((ps.Velocity[2] + endVelocity[2]) * 0.5)
		primal_velocity[2] = endVelocity[2]
		if sc.groundPlane {
			// slide along the ground plane
			ps.Velocity = clipVelocity(ps.Velocity, sc.groundTrace.Plane.Normal, OverClip)
		}
	}

	time_left := sc.frametime

	var planes clipPlanes
	// never turn against the ground plane
	if sc.groundPlane {
		planes.add(sc.groundTrace.Plane.Normal)
	}
	// never turn against original velocity
	planes.add(ps.Velocity.Normalize())

	bumpcount := 0
	for ; bumpcount < numbumps; bumpcount++ {
		end := vec.MA(ps.Origin, time_left, ps.Velocity)
		t := m.traceAll(ps.Origin, end)
		m.debugf(2, "%v %v (%v %v %v)\n", t.AllSolid, t.StartSolid, t.EndPos[0], t.EndPos[1], t.EndPos[2])

		if t.AllSolid {
			m.debugf(1, "trappedinsolid\n")
			// no falling damage build up, sideways acceleration still works
			ps.Velocity[2] = 0
			return SlideResult{SlideTrapped, bumpcount}
		}

		if t.Fraction > 0 {
			// actually covered some distance
			ps.Origin = t.EndPos
		}

		if t.Fraction == 1 {
			m.debugf(2, "moved the entire distance at bump %d\n", bumpcount)
			break
		}

		m.addTouch(t.EntityNum)

		time_left -= float32(time_left * t.Fraction)

		if planes.full() {
			m.debugf(1, "MAX_CLIP_PLANES reached\n")
			ps.Velocity = vec.Vec3{}
			return SlideResult{SlidePlaneOverflow, bumpcount}
		}

		// if this is the same plane we hit before, nudge velocity
		// out along it, which fixes some epsilon issues with
		// non-axial planes
		if planes.similar(t.Plane.Normal) >= 0 {
			if extrabumps < slideExtraBumps {
				ps.Velocity = vec.Add(t.Plane.Normal, ps.Velocity)
				extrabumps++
				numbumps++
				m.debugf(1, "planevelocitynudge\n")
			} else {
				// it happened again, nudge the origin instead and trace
				// it so we don't end up in a solid
				end = vec.Add(ps.Origin, t.Plane.Normal)
				t = m.traceAll(ps.Origin, end)
				ps.Origin = t.EndPos
				m.debugf(1, "planeoriginnudge\n")
			}
			continue
		}
		if err := planes.add(t.Plane.Normal); err != nil {
			ps.Velocity = vec.Vec3{}
			return SlideResult{SlidePlaneOverflow, bumpcount}
		}

		if m.clipToPlanes(sc, &planes, &endVelocity) {
			m.debugf(1, "third plane interaction\n")
			ps.Velocity = vec.Vec3{}
			return SlideResult{SlideCornerStuck, bumpcount}
		}
	}

	if gravity {
		ps.Velocity = endVelocity
	}

	// don't change velocity while a timer runs
	if ps.PMTime != 0 {
		ps.Velocity = primal_velocity
	}

	if bumpcount == 0 {
		return SlideResult{SlideMoved, 0}
	}
	return SlideResult{SlideClipped, bumpcount}
}

// clipToPlanes modifies the velocity so it parallels all of the clip planes.
// It reports true if the player is stuck in a corner of three planes.
func (m *Move) clipToPlanes(sc *stepContext, planes *clipPlanes, endVelocity *vec.Vec3) bool {
	ps := m.PS
	all := planes.all()

	// find a plane that it enters
	for i, pi := range all {
		into := vec.Dot(ps.Velocity, pi)
		if into >= 0.1 {
			// move doesn't interact with the plane
			continue
		}

		// see how hard we are hitting things
		if -into > sc.impactSpeed {
			sc.impactSpeed = -into
		}

		clip := clipVelocity(ps.Velocity, pi, OverClip)
		endClip := clipVelocity(*endVelocity, pi, OverClip)

		// see if there is a second plane that the new move enters
		for j, pj := range all {
			if j == i {
				continue
			}
			if vec.Dot(clip, pj) >= 0.1 {
				continue
			}

			clip = clipVelocity(clip, pj, OverClip)
			endClip = clipVelocity(endClip, pj, OverClip)

			// see if it goes back into the first clip plane
			if vec.Dot(clip, pi) >= 0 {
				continue
			}

			// slide the original velocity along the crease
			dir := vec.Cross(pi, pj).Normalize()
			clip = dir.Scale(vec.Dot(dir, ps.Velocity))
			endClip = dir.Scale(vec.Dot(dir, *endVelocity))

			// see if there is a third plane the new move enters
			for k, pk := range all {
				if k == i || k == j {
					continue
				}
				if vec.Dot(clip, pk) >= 0.1 {
					continue
				}
				return true
			}
		}

		// if we have fixed all interactions, try another move
		ps.Velocity = clip
		*endVelocity = endClip
		break
	}
	return false
}
