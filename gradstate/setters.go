package gradstate

// The setters below replace exactly one field and return the new
// snapshot. Values are stored verbatim: no clamping, no cross-field
// adjustment.

func (s State) WithType(t Type) State {
	s = s.Clone()
	s.Type = t
	return s
}

func (s State) WithAngle(angle float64) State {
	s = s.Clone()
	s.Angle = angle
	return s
}

func (s State) WithCenterX(x float64) State {
	s = s.Clone()
	s.CenterX = x
	return s
}

func (s State) WithCenterY(y float64) State {
	s = s.Clone()
	s.CenterY = y
	return s
}

func (s State) WithRadius(radius float64) State {
	s = s.Clone()
	s.Radius = radius
	return s
}

func (s State) WithRadialShape(shape Shape) State {
	s = s.Clone()
	s.RadialShape = shape
	return s
}

func (s State) WithAspectRatio(ratio float64) State {
	s = s.Clone()
	s.AspectRatio = ratio
	return s
}

func (s State) WithFeather(feather float64) State {
	s = s.Clone()
	s.Feather = feather
	return s
}

func (s State) WithGrain(grain float64) State {
	s = s.Clone()
	s.Grain = grain
	return s
}

func (s State) WithGrainFrequency(freq float64) State {
	s = s.Clone()
	s.GrainFrequency = freq
	return s
}

func (s State) WithGrainOctaves(octaves int) State {
	s = s.Clone()
	s.GrainOctaves = octaves
	return s
}

func (s State) WithGrainBlendMode(mode BlendMode) State {
	s = s.Clone()
	s.GrainBlendMode = mode
	return s
}

func (s State) WithBackgroundColor(color string) State {
	s = s.Clone()
	s.BackgroundColor = color
	return s
}

// WithColorStops replaces the whole stop list with a copy of stops.
func (s State) WithColorStops(stops []ColorStop) State {
	s.ColorStops = append([]ColorStop(nil), stops...)
	return s
}
