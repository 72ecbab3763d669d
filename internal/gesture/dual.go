package gesture

import "time"

// Dual-touch classification: two concurrent contacts combined into
// secondary (two-finger tap), zoom, rotate, scroll or pan. All deltas
// are relative to the baseline captured at pair formation, so the caller
// sees stable cumulative values for the life of the gesture.
//
// Simultaneous changes are resolved per update in priority order
// distance > angle > centroid, each against its own deadzone.

// pairPress forms a pair when a second contact lands while one is
// already live. Any in-progress single-contact gesture is closed first.
// Caller holds r.mu.
func (r *Recognizer) pairPress(c *contact, t time.Time) []Decision {
	first := r.tracker.other(c)
	if first == nil {
		return nil
	}

	// Two fingers down can no longer be a tap, long press or page.
	r.clearPendingTap()
	first.stopLongPress()

	var ds []Decision
	switch first.phase {
	case phaseDragging:
		ds = append(ds, Decision{
			Kind:   KindDragEnd,
			Touch:  first.id,
			Touch2: NoContact,
			X:      first.pos.X,
			Y:      first.pos.Y,
		})
	case phaseLongPressed:
		ds = append(ds, Decision{
			Kind:   KindLongPressEnd,
			Touch:  first.id,
			Touch2: NoContact,
			X:      first.pos.X,
			Y:      first.pos.Y,
		})
	}

	r.tracker.formPair(first, c, r.cfg.PairSeparation, r.cfg.VelocityWindow, t)
	return ds
}

// pairMove classifies the pair's current geometry against its baseline.
// Caller holds r.mu.
func (r *Recognizer) pairMove(t time.Time) []Decision {
	p := r.tracker.pair
	if p == nil {
		return nil
	}

	a, b := p.a, p.b
	curDist := distance(a.pos, b.pos)
	mid := midpoint(a.pos, b.pos)
	p.centroid.add(t, mid)

	// Contacts closer than the minimum separation give unstable ratios
	// and angles; treat both as within-deadzone rather than dividing by
	// a near-zero baseline.
	stable := !p.degenerate && curDist >= r.cfg.PairSeparation

	if stable {
		ratio := curDist / p.baseDist
		if abs(ratio-1) > r.cfg.ZoomDeadzone {
			p.moved = true
			return []Decision{{
				Kind:   KindZoom,
				Touch:  a.id,
				Touch2: b.id,
				X:      mid.X,
				Y:      mid.Y,
				Scale:  ratio,
			}}
		}

		angle := normalizeAngle(angleBetween(a.pos, b.pos) - p.baseAngle)
		if abs(angle) > r.cfg.RotateDeadzone {
			p.moved = true
			return []Decision{{
				Kind:   KindRotate,
				Touch:  a.id,
				Touch2: b.id,
				X:      mid.X,
				Y:      mid.Y,
				Angle:  angle,
			}}
		}
	}

	dx := mid.X - p.baseMid.X
	dy := mid.Y - p.baseMid.Y
	if distance(p.baseMid, mid) <= r.cfg.MoveTolerance {
		return nil
	}
	p.moved = true

	// Same axis dominance rule as the single-touch page decision.
	if abs(dy) >= abs(dx) {
		return []Decision{{
			Kind:     KindScroll,
			Touch:    a.id,
			Touch2:   b.id,
			X:        mid.X,
			Y:        mid.Y,
			DY:       dy,
			Velocity: p.centroid.speed(),
		}}
	}
	return []Decision{{
		Kind:     KindPan,
		Touch:    a.id,
		Touch2:   b.id,
		X:        mid.X,
		Y:        mid.Y,
		DX:       dx,
		Velocity: p.centroid.speed(),
	}}
}

// pairRelease dissolves the pair when either contact ends. A stationary
// pair whose first contact ends within the tap window leaves the survivor
// as a two-finger tap candidate; otherwise the survivor is inert until
// released. Caller holds r.mu.
func (r *Recognizer) pairRelease(c *contact, p *pair, survivor *contact, t time.Time) []Decision {
	if survivor == nil || p == nil {
		return nil
	}

	survivor.phase = phasePairEnded
	survivor.secondaryTap = !p.moved && t.Sub(c.start) <= r.cfg.TapWindow
	if survivor.secondaryTap {
		survivor.secondaryAt = midpoint(c.pos, survivor.pos)
	}
	return nil
}
