// Implements a raster backend for gradient previews,
// by wrapping rasterx.
//
// Render draws the same picture as the SVG written by svggen, on an
// image of any size: the 100x100 view box is centered and scaled to fit,
// as preserveAspectRatio="xMidYMid meet" does.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the side used when Options leaves the size to zero.
const DefaultSize = 512

// Options tweaks the rendering.
type Options struct {
	// Width and Height are in pixels; a zero or negative value means
	// DefaultSize.
	Width, Height int
	// Seed drives the grain texture.
	Seed int
	// Background fills the whole image with the background color of the
	// state before drawing the gradient.
	Background bool
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultSize
	}
	if h <= 0 {
		h = DefaultSize
	}
	return w, h
}

// viewport maps the view box to pixels
type viewport struct {
	scale, offX, offY float64
}

func newViewport(w, h int) viewport {
	side := math.Min(float64(w), float64(h))
	scale := side / 100
	return viewport{scale: scale, offX: (float64(w) - side) / 2, offY: (float64(h) - side) / 2}
}

// toUser returns the user space coordinates of the center of the pixel (px, py).
func (vp viewport) toUser(px, py int) (float64, float64) {
	return (float64(px) + 0.5 - vp.offX) / vp.scale, (float64(py) + 0.5 - vp.offY) / vp.scale
}

func (vp viewport) toPixel(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fToFixed(x*vp.scale + vp.offX), Y: fToFixed(y*vp.scale + vp.offY)}
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// Renderer fills shapes of the view box on a
// destination image.
type Renderer struct {
	vp     viewport
	filler *rasterx.Filler
}

// NewRenderer returns a renderer drawing on dst.
func NewRenderer(dst *image.RGBA) *Renderer {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	return &Renderer{vp: newViewport(w, h), filler: rasterx.NewFiller(w, h, scanner)}
}

// fill draws the current path with color, which is either a color.Color
// or a rasterx.ColorFunc.
func (rd *Renderer) fill(color interface{}) {
	rd.filler.SetColor(color)
	rd.filler.Draw()
	rd.filler.Clear()
}

// FillViewBox fills the whole 100x100 view box.
func (rd *Renderer) FillViewBox(color interface{}) {
	rd.filler.Start(rd.vp.toPixel(0, 0))
	rd.filler.Line(rd.vp.toPixel(100, 0))
	rd.filler.Line(rd.vp.toPixel(100, 100))
	rd.filler.Line(rd.vp.toPixel(0, 100))
	rd.filler.Stop(true)
	rd.fill(color)
}

// FillEllipse fills the ellipse centered on (cx, cy), in user units.
func (rd *Renderer) FillEllipse(cx, cy, rx, ry float64, color interface{}) {
	vp := rd.vp
	rasterx.AddEllipse(cx*vp.scale+vp.offX, cy*vp.scale+vp.offY, rx*vp.scale, ry*vp.scale, 0, rd.filler)
	rd.fill(color)
}

// fillMask draws the silhouette of the gradient
func (rd *Renderer) fillMask(s gradstate.State) {
	if s.IsEllipse() {
		rd.FillEllipse(50, 50, 50*s.AspectRatio, 50, color.White)
	} else {
		rd.FillViewBox(color.White)
	}
}

// Render draws s on a new image.
func Render(s gradstate.State, opts Options) *image.RGBA {
	w, h := opts.size()
	bounds := image.Rect(0, 0, w, h)
	vp := newViewport(w, h)

	gradient := image.NewRGBA(bounds)
	NewRenderer(gradient).FillViewBox(vp.colorFunction(s))

	var group *image.RGBA
	if s.Feather > 0 {
		group = gaussianBlur(gradient, blurSigma(s.Feather, vp, w, h))
	} else {
		group = clone.AsRGBA(gradient)
	}
	if s.Grain > 0 {
		grain := grainLayer(gradient, s, vp, opts.Seed)
		draw.Draw(group, bounds, grain, image.Point{}, draw.Over)
	}

	mask := image.NewRGBA(bounds)
	NewRenderer(mask).fillMask(s)

	out := image.NewRGBA(bounds)
	if opts.Background {
		bg := parseColor(s.BackgroundColor)
		r, g, b := bg.RGB255()
		draw.Draw(out, bounds, image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 0xff}), image.Point{}, draw.Src)
	}
	draw.DrawMask(out, bounds, group, image.Point{}, mask, image.Point{}, draw.Over)

	okgrad.Logger().Debug("rendered gradient", "width", w, "height", h, "type", s.Type)
	return out
}

// EncodePNG writes img in the PNG format.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
