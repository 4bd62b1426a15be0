package svggen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/stretchr/testify/assert"
)

const linearDefault = `<svg width="100%" height="100%" viewBox="0 0 100 100" xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="xMidYMid meet">
  <defs>
    <linearGradient id="mainGradient" gradientTransform="rotate(90, 50, 50)">
      <stop offset="0%" stop-color="#FF0080" stop-opacity="1" />
      <stop offset="100%" stop-color="#7928CA" stop-opacity="1" />
    </linearGradient>
    <mask id="shapeMask">
      <rect x="0" y="0" width="100" height="100" fill="white" />
    </mask>
  </defs>
  <g mask="url(#shapeMask)">
    <rect width="100" height="100" fill="url(#mainGradient)" />
  </g>
</svg>
`

func TestGenerateLinear(t *testing.T) {
	got := Generate(gradstate.Default().WithType(gradstate.Linear), Options{})
	assert.Equal(t, linearDefault, got)
}

func TestGenerateSortsStops(t *testing.T) {
	s := gradstate.Default().WithColorStops([]gradstate.ColorStop{
		{ID: "a", Color: "#000001", Alpha: 1, Position: 80},
		{ID: "b", Color: "#000002", Alpha: 1, Position: 10},
		{ID: "c", Color: "#000003", Alpha: 1, Position: 50},
		{ID: "d", Color: "#000004", Alpha: 1, Position: 10},
	})
	for _, typ := range [...]gradstate.Type{gradstate.Linear, gradstate.Radial} {
		out := Generate(s.WithType(typ), Options{})
		i10 := strings.Index(out, `offset="10%" stop-color="#000002"`)
		i10bis := strings.Index(out, `offset="10%" stop-color="#000004"`)
		i50 := strings.Index(out, `offset="50%"`)
		i80 := strings.Index(out, `offset="80%"`)
		assert.True(t, 0 < i10 && i10 < i10bis && i10bis < i50 && i50 < i80, "stops out of order in %s", out)
	}
}

func TestConditionalFilters(t *testing.T) {
	base := gradstate.Default()

	out := Generate(base, Options{})
	assert.NotContains(t, out, "<filter")
	assert.NotContains(t, out, "url(#blur)")
	assert.NotContains(t, out, "url(#noise)")

	out = Generate(base.WithFeather(2), Options{})
	assert.Equal(t, 1, strings.Count(out, "<filter"))
	assert.Equal(t, 1, strings.Count(out, `<filter id="blur">`))
	assert.Contains(t, out, `<feGaussianBlur stdDeviation="2" />`)
	assert.Contains(t, out, `filter="url(#blur)"`)

	for _, mode := range gradstate.BlendModes {
		out = Generate(base.WithGrain(0.3).WithGrainBlendMode(mode), Options{Seed: 7})
		assert.Equal(t, 1, strings.Count(out, "<filter"))
		assert.Equal(t, 1, strings.Count(out, `<filter id="noise">`))
		assert.Contains(t, out, fmt.Sprintf(`<feBlend mode="%s"`, mode))
		assert.Contains(t, out, `baseFrequency="0.6" numOctaves="4" seed="7"`)
		assert.Contains(t, out, `fill="url(#mainGradient)" filter="url(#noise)"`)
		if mode == gradstate.ColorBurn {
			assert.Contains(t, out, `type="luminanceToAlpha"`)
			assert.NotContains(t, out, `operator="arithmetic"`)
		} else {
			assert.Contains(t, out, `k1="1" k2="0.3" k3="0" k4="0"`)
		}
	}

	out = Generate(base.WithFeather(1.5).WithGrain(0.1), Options{})
	assert.Equal(t, 2, strings.Count(out, "<filter"))
}

func TestGenerateRadial(t *testing.T) {
	s := gradstate.Default().WithAspectRatio(1.5).WithCenterX(20).WithRadius(40.5)
	out := Generate(s, Options{})
	assert.Contains(t, out, `<radialGradient id="mainGradient" cx="20%" cy="32%" r="40.5%" gradientUnits="userSpaceOnUse" gradientTransform="translate(50 50) scale(1.5 1) translate(-50 -50)">`)
	assert.Contains(t, out, `<ellipse cx="50" cy="50" rx="75" ry="50" fill="white" />`)
	assert.NotContains(t, out, `<rect x="0"`)

	out = Generate(s.WithRadialShape(gradstate.Circle), Options{})
	assert.Contains(t, out, `r="40.5%" gradientUnits="userSpaceOnUse">`)
	assert.NotContains(t, out, "gradientTransform")
	assert.NotContains(t, out, "<ellipse")
	assert.Contains(t, out, `<rect x="0" y="0" width="100" height="100" fill="white" />`)

	// the ellipse silhouette is tied to radial gradients
	out = Generate(s.WithType(gradstate.Linear), Options{})
	assert.NotContains(t, out, "<ellipse")
}

func TestSeed(t *testing.T) {
	s := gradstate.Default().WithGrain(0.2)
	assert.Equal(t, Generate(s, Options{Seed: 3}), Generate(s, Options{Seed: 3}))

	a, b := Generate(s, Options{Seed: 3}), Generate(s, Options{Seed: 4})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, strings.Replace(b, `seed="4"`, `seed="3"`, 1))

	for i := 0; i < 100; i++ {
		seed := RandomSeed()
		assert.True(t, 0 <= seed && seed < 1000)
	}
}

func TestGenerateEscapes(t *testing.T) {
	s := gradstate.Default().UpdateColorStop("1", gradstate.StopPatch{}.WithColor(`"><script>`))
	out := Generate(s, Options{})
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `stop-color="&#34;&gt;&lt;script&gt;"`)
}
