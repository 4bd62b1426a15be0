package gradstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsIndependent(t *testing.T) {
	a := Default()
	a.ColorStops[0].Color = "#000000"
	assert.Equal(t, "#FF0080", Default().ColorStops[0].Color)
	require.NoError(t, Validate(Default()))
}

func TestSettersReplaceOneField(t *testing.T) {
	base := Default()
	s := base.WithRadialShape(Circle)
	assert.Equal(t, Circle, s.RadialShape)
	assert.Equal(t, base.AspectRatio, s.AspectRatio) // not cleared
	assert.Equal(t, Ellipse, base.RadialShape)

	s = base.WithAngle(720).WithRadius(-5).WithGrainOctaves(42)
	assert.Equal(t, 720., s.Angle)
	assert.Equal(t, -5., s.Radius)
	assert.Equal(t, 42, s.GrainOctaves)

	s = base.WithType(Linear).WithCenterX(1).WithCenterY(2).WithAspectRatio(1.5).
		WithFeather(3).WithGrain(0.2).WithGrainFrequency(4).WithGrainBlendMode(Screen).
		WithBackgroundColor("#ABCDEF")
	assert.Equal(t, State{
		Type: Linear, Angle: 90, ColorStops: DefaultColorStops(), CenterX: 1, CenterY: 2,
		Radius: 66, RadialShape: Ellipse, AspectRatio: 1.5, Feather: 3, Grain: 0.2,
		GrainFrequency: 4, GrainOctaves: 4, GrainBlendMode: Screen, BackgroundColor: "#ABCDEF",
	}, s)
}

func TestAddColorStop(t *testing.T) {
	s := Default().AddColorStop("3")
	require.Len(t, s.ColorStops, 3)
	assert.Equal(t, ColorStop{ID: "3", Color: "#FFFFFF", Alpha: 1, Position: 50}, s.ColorStops[2])

	// storage order, not sorted order: last is now the stop at 50
	s = s.AddColorStop("4")
	assert.Equal(t, 25., s.ColorStops[3].Position)

	// rounding half up
	s = Default().WithColorStops([]ColorStop{{ID: "1", Position: 0}, {ID: "2", Position: 5}}).AddColorStop("x")
	assert.Equal(t, 3., s.ColorStops[2].Position)

	s = State{}.AddColorStop("1")
	assert.Equal(t, 50., s.ColorStops[0].Position)
}

func TestUpdateColorStop(t *testing.T) {
	base := Default()
	s := base.UpdateColorStop("2", StopPatch{}.WithAlpha(0.5).WithColor("#000000"))
	assert.Equal(t, ColorStop{ID: "2", Color: "#000000", Alpha: 0.5, Position: 100}, s.ColorStops[1])
	assert.Equal(t, 1., base.ColorStops[1].Alpha)

	// out of range values are stored verbatim
	s = base.UpdateColorStop("1", StopPatch{}.WithAlpha(3).WithPosition(-20))
	assert.Equal(t, 3., s.ColorStops[0].Alpha)
	assert.Equal(t, -20., s.ColorStops[0].Position)
	assert.Error(t, Validate(s))

	assert.Equal(t, base, base.UpdateColorStop("unknown", StopPatch{}.WithAlpha(0)))
}

func TestRemoveColorStop(t *testing.T) {
	s := Default().RemoveColorStop("1")
	assert.Equal(t, []ColorStop{{ID: "2", Color: "#7928CA", Alpha: 1, Position: 100}}, s.ColorStops)
	s = s.RemoveColorStop("2")
	assert.Empty(t, s.ColorStops)
	assert.Len(t, Default().RemoveColorStop("nope").ColorStops, 2)
}

func TestSortedStops(t *testing.T) {
	s := Default().WithColorStops([]ColorStop{
		{ID: "a", Position: 80},
		{ID: "b", Position: 10},
		{ID: "c", Position: 50},
		{ID: "d", Position: 10},
	})
	var ids []string
	for _, stop := range s.SortedStops() {
		ids = append(ids, stop.ID)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids)
	assert.Equal(t, "a", s.ColorStops[0].ID)
}

func TestValidate(t *testing.T) {
	s := Default()
	s.GrainBlendMode = "darken"
	s.BackgroundColor = "red"
	s.ColorStops = s.ColorStops[:1]
	err := Validate(s)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "grainBlendMode")
	assert.Contains(t, err.Error(), "backgroundColor")
	assert.Contains(t, err.Error(), "colorStops")
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite(Default()))

	err := CheckFinite(Default().WithAngle(math.Inf(1)))
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "angle")

	err = CheckFinite(Default().WithFeather(math.NaN()))
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "feather")

	s := Default()
	s.ColorStops[1].Position = math.Inf(-1)
	err = CheckFinite(s)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), s.ColorStops[1].ID)
}

func TestEnums(t *testing.T) {
	assert.True(t, Linear.Valid())
	assert.False(t, Type("conic").Valid())
	assert.True(t, Ellipse.Valid())
	assert.False(t, Shape("square").Valid())
	for _, m := range BlendModes {
		assert.True(t, m.Valid())
	}
	assert.False(t, BlendMode("darken").Valid())
}

func TestParseEnums(t *testing.T) {
	typ, err := ParseType("linear")
	require.NoError(t, err)
	assert.Equal(t, Linear, typ)
	_, err = ParseType("conic")
	assert.ErrorIs(t, err, ErrInvalidEnum)

	shape, err := ParseShape("circle")
	require.NoError(t, err)
	assert.Equal(t, Circle, shape)
	_, err = ParseShape("")
	assert.ErrorIs(t, err, ErrInvalidEnum)

	mode, err := ParseBlendMode("soft-light")
	require.NoError(t, err)
	assert.Equal(t, SoftLight, mode)
	_, err = ParseBlendMode("Overlay")
	assert.ErrorIs(t, err, ErrInvalidEnum)
}
