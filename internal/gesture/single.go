package gesture

import "time"

// Single-touch classification: one contact deciding among primary tap,
// double-tap select, long-press select, drag and page flick. The branch
// is chosen once, at the moment the movement tolerance is first
// exceeded, and the contact stays in that branch until release.

// singlePress starts classification for a lone contact. Caller holds r.mu.
func (r *Recognizer) singlePress(c *contact, t time.Time) []Decision {
	if c.button == ButtonSecondary {
		c.phase = phaseSecondary
		return nil
	}

	var ds []Decision
	if pt := r.tap; pt != nil {
		if distance(pt.pos, c.origin) <= r.cfg.DoubleTapDistance && t.Sub(pt.at) <= r.cfg.DoubleTapWindow {
			// Second tap of a double tap: consume the pending tap and
			// resolve on this contact's release.
			c.secondTap = true
			r.clearPendingTap()
		} else {
			// A press somewhere else settles the pending tap as a plain
			// primary right away.
			ds = append(ds, r.takePendingTap())
		}
	}

	c.longPressTimer = r.sched.AfterFunc(r.cfg.LongPress, func() {
		r.longPressFired(c)
	})
	return ds
}

// longPressFired is the long-press timer callback. It is a no-op unless
// the contact is still pressed and under tolerance, which guarantees a
// stale timer cannot emit after the contact resolved another way.
func (r *Recognizer) longPressFired(c *contact) {
	r.mu.Lock()
	if r.tracker.get(c.id) != c || c.phase != phasePressed {
		r.mu.Unlock()
		return
	}
	c.longPress = true
	c.phase = phaseLongPressed
	c.longPressTimer = nil
	d := Decision{
		Kind:      KindSelect,
		Touch:     c.id,
		Touch2:    NoContact,
		X:         c.pos.X,
		Y:         c.pos.Y,
		LongPress: true,
	}
	r.mu.Unlock()

	r.dispatchAll([]Decision{d})
}

// singleMove advances a lone contact's state machine. Caller holds r.mu.
func (r *Recognizer) singleMove(c *contact, p Point, t time.Time) []Decision {
	moved := distance(c.origin, p)

	switch c.phase {
	case phasePressed:
		if moved <= r.cfg.MoveTolerance {
			return nil
		}
		c.stopLongPress()

		// Tie-break at the moment tolerance is first exceeded: a fast
		// move early in the press is a page flick, anything else is a
		// drag. The branch never changes afterwards.
		if t.Sub(c.start) <= r.cfg.PageWindow && c.window.speed() >= r.cfg.pageVelocityPx() {
			c.phase = phasePaging
			return nil
		}
		c.phase = phaseDragging
		return []Decision{{
			Kind:   KindDragStart,
			Touch:  c.id,
			Touch2: NoContact,
			X:      c.origin.X,
			Y:      c.origin.Y,
		}}

	case phaseLongPressed:
		if moved <= r.cfg.MoveTolerance {
			return nil
		}
		// The drag continues the long press; the caller already saw
		// select(long_press=true) and gets no long_press_end.
		c.phase = phaseDragging
		return []Decision{{
			Kind:      KindDragStart,
			Touch:     c.id,
			Touch2:    NoContact,
			X:         c.origin.X,
			Y:         c.origin.Y,
			LongPress: true,
		}}

	case phaseDragging:
		return []Decision{{
			Kind:      KindDrag,
			Touch:     c.id,
			Touch2:    NoContact,
			X:         p.X,
			Y:         p.Y,
			DX:        p.X - c.origin.X,
			DY:        p.Y - c.origin.Y,
			Velocity:  c.window.speed(),
			LongPress: c.longPress,
		}}

	default: // phasePaging: axis and direction resolve at release
		return nil
	}
}

// singleRelease resolves the terminal decision for a lone contact.
// Caller holds r.mu.
func (r *Recognizer) singleRelease(c *contact, p Point, t time.Time) []Decision {
	switch c.phase {
	case phasePressed:
		if t.Sub(c.start) > r.cfg.TapWindow {
			// Held too long for a tap but released before the
			// long-press timer: no gesture.
			return nil
		}
		if c.secondTap {
			return []Decision{{
				Kind:   KindSelect,
				Touch:  c.id,
				Touch2: NoContact,
				X:      p.X,
				Y:      p.Y,
			}}
		}
		// A clean tap waits out the double-tap window before becoming a
		// primary event, so a tap and a double tap never both fire.
		r.armPendingTap(c.id, p, t)
		return nil

	case phaseSecondary:
		return []Decision{{
			Kind:   KindSecondary,
			Touch:  c.id,
			Touch2: NoContact,
			X:      p.X,
			Y:      p.Y,
		}}

	case phaseLongPressed:
		return []Decision{{
			Kind:   KindLongPressEnd,
			Touch:  c.id,
			Touch2: NoContact,
			X:      p.X,
			Y:      p.Y,
		}}

	case phaseDragging:
		return []Decision{{
			Kind:   KindDragEnd,
			Touch:  c.id,
			Touch2: NoContact,
			X:      p.X,
			Y:      p.Y,
		}}

	case phasePaging:
		dx := p.X - c.origin.X
		dy := p.Y - c.origin.Y
		if abs(dx) >= abs(dy) {
			return []Decision{{
				Kind:        KindHorizontalPage,
				Touch:       c.id,
				Touch2:      NoContact,
				X:           p.X,
				Y:           p.Y,
				LeftToRight: dx > 0,
			}}
		}
		return []Decision{{
			Kind:        KindVerticalPage,
			Touch:       c.id,
			Touch2:      NoContact,
			X:           p.X,
			Y:           p.Y,
			BottomToTop: dy > 0,
		}}

	case phasePairEnded:
		// Second release of a two-finger tap.
		if c.secondaryTap && t.Sub(c.start) <= r.cfg.TapWindow {
			return []Decision{{
				Kind:   KindSecondary,
				Touch:  c.id,
				Touch2: NoContact,
				X:      c.secondaryAt.X,
				Y:      c.secondaryAt.Y,
			}}
		}
		return nil

	default:
		return nil
	}
}

// armPendingTap schedules the primary-event timer for a resolved tap.
func (r *Recognizer) armPendingTap(id ContactID, p Point, t time.Time) {
	r.clearPendingTap()
	pt := &pendingTap{id: id, pos: p, at: t}
	pt.timer = r.sched.AfterFunc(r.cfg.DoubleTapWindow, func() {
		r.tapExpired(pt)
	})
	r.tap = pt
}

// tapExpired is the double-tap window timer callback: no second tap
// arrived, so the pending tap settles as a primary event.
func (r *Recognizer) tapExpired(pt *pendingTap) {
	r.mu.Lock()
	if r.tap != pt {
		r.mu.Unlock()
		return
	}
	d := r.takePendingTap()
	r.mu.Unlock()

	r.dispatchAll([]Decision{d})
}

// takePendingTap clears the pending tap and returns its primary decision.
// Caller holds r.mu and must have checked r.tap != nil.
func (r *Recognizer) takePendingTap() Decision {
	pt := r.tap
	r.clearPendingTap()
	return Decision{
		Kind:   KindPrimary,
		Touch:  pt.id,
		Touch2: NoContact,
		X:      pt.pos.X,
		Y:      pt.pos.Y,
	}
}

// clearPendingTap cancels the pending tap without emitting it.
func (r *Recognizer) clearPendingTap() {
	if r.tap != nil {
		if r.tap.timer != nil {
			r.tap.timer.Stop()
		}
		r.tap = nil
	}
}

// abs returns the absolute value of a float64.
func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
