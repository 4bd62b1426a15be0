package gradstate

import (
	"math"
	"slices"
)

// StopPatch lists the fields of a ColorStop to overwrite.
// Nil fields are left untouched.
type StopPatch struct {
	Color    *string  `json:"color,omitempty"`
	Alpha    *float64 `json:"alpha,omitempty"`
	Position *float64 `json:"position,omitempty"`
}

func (p StopPatch) WithColor(c string) StopPatch {
	p.Color = &c
	return p
}

func (p StopPatch) WithAlpha(a float64) StopPatch {
	p.Alpha = &a
	return p
}

func (p StopPatch) WithPosition(x float64) StopPatch {
	p.Position = &x
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p StopPatch) IsEmpty() bool { return p.Color == nil && p.Alpha == nil && p.Position == nil }

func (p StopPatch) apply(stop ColorStop) ColorStop {
	if p.Color != nil {
		stop.Color = *p.Color
	}
	if p.Alpha != nil {
		stop.Alpha = *p.Alpha
	}
	if p.Position != nil {
		stop.Position = *p.Position
	}
	return stop
}

// jsRound rounds half up, like Math.round.
func jsRound(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// AddColorStop appends a white, opaque stop with the given id.
//
// Its position is the rounded mean of the first and last stops in
// storage order, which is not necessarily the visual midpoint.
// An empty list gets a stop at 50.
func (s State) AddColorStop(id string) State {
	position := 50.
	if n := len(s.ColorStops); n > 0 {
		position = jsRound((s.ColorStops[n-1].Position + s.ColorStops[0].Position) / 2)
	}
	out := s.Clone()
	out.ColorStops = append(out.ColorStops, ColorStop{ID: id, Color: NewStopColor, Alpha: 1, Position: position})
	return out
}

// UpdateColorStop merges patch into the stop with the given id.
// Unknown ids leave the state unchanged.
func (s State) UpdateColorStop(id string, patch StopPatch) State {
	out := s.Clone()
	for i, stop := range out.ColorStops {
		if stop.ID == id {
			out.ColorStops[i] = patch.apply(stop)
		}
	}
	return out
}

// RemoveColorStop drops every stop with the given id, whatever the
// number of stops left. Keeping at least MinColorStops is the caller's
// job (see Store).
func (s State) RemoveColorStop(id string) State {
	out := s.Clone()
	out.ColorStops = slices.DeleteFunc(out.ColorStops, func(stop ColorStop) bool { return stop.ID == id })
	return out
}

// Stop returns the stop with the given id.
func (s State) Stop(id string) (ColorStop, bool) {
	for _, stop := range s.ColorStops {
		if stop.ID == id {
			return stop, true
		}
	}
	return ColorStop{}, false
}

// SortedStops returns a copy of the stops sorted by ascending position.
// The sort is stable: stops at the same position keep their storage order.
func (s State) SortedStops() []ColorStop {
	sorted := append([]ColorStop(nil), s.ColorStops...)
	slices.SortStableFunc(sorted, func(a, b ColorStop) int {
		switch {
		case a.Position < b.Position:
			return -1
		case a.Position > b.Position:
			return 1
		}
		return 0
	})
	return sorted
}
