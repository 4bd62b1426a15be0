package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/benoitkugler/okgrad/gradstate"
)

type blendFunc func(bg, fg image.Image) *image.RGBA

var blendFuncs = map[gradstate.BlendMode]blendFunc{
	gradstate.Overlay:   blend.Overlay,
	gradstate.ColorBurn: blend.ColorBurn,
	gradstate.Multiply:  blend.Multiply,
	gradstate.Screen:    blend.Screen,
	gradstate.SoftLight: blend.SoftLight,
}

func scaleChannel(v uint8, f float64) uint8 {
	return uint8(clamp01(float64(v)/255*f)*255 + 0.5)
}

// grainLayer returns the second pass of the noise filter over src, which
// holds the unfiltered gradient.
func grainLayer(src *image.RGBA, s gradstate.State, vp viewport, seed int) *image.RGBA {
	noise := newValueNoise(seed)
	bounds := src.Bounds()
	mix := image.NewRGBA(bounds)
	burn := s.GrainBlendMode == gradstate.ColorBurn
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			c := src.RGBAAt(px, py)
			if c.A == 0 {
				continue
			}
			x, y := vp.toUser(px, py)
			n := noise.fractal(x, y, s.GrainFrequency, s.GrainOctaves)
			if burn {
				// the source, with the noise luminance as alpha
				mix.SetRGBA(px, py, color.RGBA{
					R: scaleChannel(c.R, n), G: scaleChannel(c.G, n),
					B: scaleChannel(c.B, n), A: scaleChannel(c.A, n),
				})
				continue
			}
			// arithmetic composite k1=1 k2=grain, on premultiplied values
			a := clamp01(n*float64(c.A)/255 + s.Grain*n)
			channel := func(v uint8) uint8 {
				f := n*float64(v)/255 + s.Grain*n
				if f > a {
					f = a
				}
				return uint8(f*255 + 0.5)
			}
			mix.SetRGBA(px, py, color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: uint8(a*255 + 0.5)})
		}
	}
	if burn {
		return blend.ColorBurn(mix, src)
	}
	fn, ok := blendFuncs[s.GrainBlendMode]
	if !ok {
		fn = blend.Normal
	}
	return fn(src, mix)
}
