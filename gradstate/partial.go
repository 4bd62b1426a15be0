package gradstate

// Partial is an incomplete state, as recovered from a query string or an
// imported document: nil fields are unknown and taken from a base state.
type Partial struct {
	Type            *Type
	Angle           *float64
	CenterX         *float64
	CenterY         *float64
	Radius          *float64
	RadialShape     *Shape
	Feather         *float64
	Grain           *float64
	GrainFrequency  *float64
	GrainOctaves    *int
	GrainBlendMode  *BlendMode
	AspectRatio     *float64
	BackgroundColor *string
	ColorStops      []ColorStop
}

// Apply overlays the fields set in p on base and returns the result.
func (p Partial) Apply(base State) State {
	s := base.Clone()
	if p.Type != nil {
		s.Type = *p.Type
	}
	setFloat(&s.Angle, p.Angle)
	setFloat(&s.CenterX, p.CenterX)
	setFloat(&s.CenterY, p.CenterY)
	setFloat(&s.Radius, p.Radius)
	if p.RadialShape != nil {
		s.RadialShape = *p.RadialShape
	}
	setFloat(&s.Feather, p.Feather)
	setFloat(&s.Grain, p.Grain)
	setFloat(&s.GrainFrequency, p.GrainFrequency)
	if p.GrainOctaves != nil {
		s.GrainOctaves = *p.GrainOctaves
	}
	if p.GrainBlendMode != nil {
		s.GrainBlendMode = *p.GrainBlendMode
	}
	setFloat(&s.AspectRatio, p.AspectRatio)
	if p.BackgroundColor != nil {
		s.BackgroundColor = *p.BackgroundColor
	}
	if p.ColorStops != nil {
		s.ColorStops = append([]ColorStop(nil), p.ColorStops...)
	}
	return s
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
