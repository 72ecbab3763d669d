package gesture

import "math"

// Wheel/modifier normalization: each wheel tick is an independent,
// stateless decision mapping onto the same gesture vocabulary the
// dual-touch classifier emits. Held modifiers pick the gesture with
// priority ctrl > shift > alt; the pointer position is the focus.

func (r *Recognizer) wheel(p Point, step float64, mods Modifiers) []Decision {
	switch {
	case mods.Has(ModCtrl):
		return []Decision{{
			Kind:   KindZoom,
			Touch:  NoContact,
			Touch2: NoContact,
			X:      p.X,
			Y:      p.Y,
			Scale:  math.Pow(r.cfg.WheelScale, step),
		}}

	case mods.Has(ModShift):
		return r.wheelPan(p, step)

	case mods.Has(ModAlt):
		return []Decision{{
			Kind:   KindRotate,
			Touch:  NoContact,
			Touch2: NoContact,
			X:      p.X,
			Y:      p.Y,
			Angle:  step * r.cfg.WheelAngleStep,
		}}

	default:
		return []Decision{{
			Kind:   KindScroll,
			Touch:  NoContact,
			Touch2: NoContact,
			X:      p.X,
			Y:      p.Y,
			DY:     step * r.cfg.WheelScrollStep,
		}}
	}
}

// wheelPan maps a shifted or horizontal wheel tick to pan.
func (r *Recognizer) wheelPan(p Point, step float64) []Decision {
	return []Decision{{
		Kind:   KindPan,
		Touch:  NoContact,
		Touch2: NoContact,
		X:      p.X,
		Y:      p.Y,
		DX:     step * r.cfg.WheelScrollStep,
	}}
}
