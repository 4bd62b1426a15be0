package gradstate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned by Reduce for a nil action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrTooFewStops is returned by Store.Dispatch when a removal would
	// leave less than the minimum number of stops.
	ErrTooFewStops = errors.New("a gradient needs at least two color stops")
)

// Action is a single edit, applied by Reduce.
type Action interface {
	reduce(s State, ids IDSource) State
}

type (
	SetType            struct{ Type Type }
	SetAngle           struct{ Angle float64 }
	SetCenterX         struct{ X float64 }
	SetCenterY         struct{ Y float64 }
	SetRadius          struct{ Radius float64 }
	SetRadialShape     struct{ Shape Shape }
	SetAspectRatio     struct{ Ratio float64 }
	SetFeather         struct{ Feather float64 }
	SetGrain           struct{ Grain float64 }
	SetGrainFrequency  struct{ Frequency float64 }
	SetGrainOctaves    struct{ Octaves int }
	SetGrainBlendMode  struct{ Mode BlendMode }
	SetBackgroundColor struct{ Color string }

	// AddColorStop appends a stop whose id is taken from the IDSource.
	AddColorStop struct{}

	UpdateColorStop struct {
		ID    string
		Patch StopPatch
	}

	RemoveColorStop struct{ ID string }

	// Replace swaps the whole snapshot, as done when loading a preset.
	Replace struct{ State State }
)

func (a SetType) reduce(s State, _ IDSource) State            { return s.WithType(a.Type) }
func (a SetAngle) reduce(s State, _ IDSource) State           { return s.WithAngle(a.Angle) }
func (a SetCenterX) reduce(s State, _ IDSource) State         { return s.WithCenterX(a.X) }
func (a SetCenterY) reduce(s State, _ IDSource) State         { return s.WithCenterY(a.Y) }
func (a SetRadius) reduce(s State, _ IDSource) State          { return s.WithRadius(a.Radius) }
func (a SetRadialShape) reduce(s State, _ IDSource) State     { return s.WithRadialShape(a.Shape) }
func (a SetAspectRatio) reduce(s State, _ IDSource) State     { return s.WithAspectRatio(a.Ratio) }
func (a SetFeather) reduce(s State, _ IDSource) State         { return s.WithFeather(a.Feather) }
func (a SetGrain) reduce(s State, _ IDSource) State           { return s.WithGrain(a.Grain) }
func (a SetGrainFrequency) reduce(s State, _ IDSource) State  { return s.WithGrainFrequency(a.Frequency) }
func (a SetGrainOctaves) reduce(s State, _ IDSource) State    { return s.WithGrainOctaves(a.Octaves) }
func (a SetGrainBlendMode) reduce(s State, _ IDSource) State  { return s.WithGrainBlendMode(a.Mode) }
func (a SetBackgroundColor) reduce(s State, _ IDSource) State { return s.WithBackgroundColor(a.Color) }

func (AddColorStop) reduce(s State, ids IDSource) State {
	return s.AddColorStop(ids.NextID(s.ColorStops))
}

func (a UpdateColorStop) reduce(s State, _ IDSource) State { return s.UpdateColorStop(a.ID, a.Patch) }
func (a RemoveColorStop) reduce(s State, _ IDSource) State { return s.RemoveColorStop(a.ID) }
func (a Replace) reduce(State, IDSource) State             { return a.State.Clone() }

// Reduce returns the snapshot following s once a is applied.
// A nil ids defaults to a fresh NumericIDs.
func Reduce(s State, a Action, ids IDSource) (State, error) {
	if a == nil {
		return s, ErrUnknownAction
	}
	if ids == nil {
		ids = &NumericIDs{}
	}
	return a.reduce(s, ids), nil
}

// Describe returns a short human readable form of an action, for logs.
func Describe(a Action) string {
	switch a := a.(type) {
	case nil:
		return "<nil>"
	case AddColorStop:
		return "add color stop"
	case UpdateColorStop:
		return fmt.Sprintf("update color stop %q", a.ID)
	case RemoveColorStop:
		return fmt.Sprintf("remove color stop %q", a.ID)
	case Replace:
		return "replace state"
	default:
		return fmt.Sprintf("%T%+v", a, a)
	}
}
