package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/stretchr/testify/assert"
)

// edgeImage is black on the left half and white on the right half.
func edgeImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if x >= w/2 {
				v = 0xFF
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
		}
	}
	return img
}

func TestGaussianBlurEdgeProfile(t *testing.T) {
	const sigma = 8.
	img := gaussianBlur(edgeImage(200, 10), sigma)
	// the response of a Gaussian to a step is its cumulative distribution
	for _, x := range []int{90, 96, 100, 104, 108, 116} {
		d := float64(x) + 0.5 - 100
		expected := 255 * 0.5 * (1 + math.Erf(d/(sigma*math.Sqrt2)))
		got := float64(img.RGBAAt(x, 5).R)
		assert.InDelta(t, expected, got, 3, "x = %d", x)
	}
	assert.Equal(t, uint8(0xFF), img.RGBAAt(150, 5).A)

	// wide blurs are computed at a lower resolution
	const wide = 24.
	img = gaussianBlur(edgeImage(600, 10), wide)
	for _, x := range []int{276, 300, 312, 324, 348} {
		d := float64(x) + 0.5 - 300
		expected := 255 * 0.5 * (1 + math.Erf(d/(wide*math.Sqrt2)))
		got := float64(img.RGBAAt(x, 5).R)
		assert.InDelta(t, expected, got, 10, "x = %d", x)
	}

	flat := gaussianBlur(edgeImage(20, 4), 0)
	assert.Equal(t, edgeImage(20, 4).Pix, flat.Pix)
}

func TestBlurSigma(t *testing.T) {
	vp := newViewport(400, 400)
	assert.Equal(t, 8., blurSigma(2, vp, 400, 400))
	limit := math.Hypot(400, 400) / 3
	assert.Equal(t, limit, blurSigma(1e9, vp, 400, 400))
	assert.Equal(t, limit, blurSigma(math.Inf(1), vp, 400, 400))
}

func TestRenderHugeFeather(t *testing.T) {
	opts := Options{Width: 40, Height: 40}
	var inf *image.RGBA
	assert.NotPanics(t, func() { inf = Render(gradstate.Default().WithFeather(math.Inf(1)), opts) })
	huge := Render(gradstate.Default().WithFeather(1e6), opts)
	assert.Equal(t, huge.Pix, inf.Pix)

	// not a number: no blur at all
	assert.Equal(t, Render(gradstate.Default(), opts).Pix, Render(gradstate.Default().WithFeather(math.NaN()), opts).Pix)
}
