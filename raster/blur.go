package raster

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
	xdraw "golang.org/x/image/draw"
)

// maxDirectSigma is the largest deviation, in pixels, convolved at full
// resolution. Wider blurs run on a downscaled copy, so that the cost
// only depends on the image size.
const maxDirectSigma = 8

// convolveGaussian blurs src with a Gaussian of standard deviation sigma,
// in pixels. The kernel reaches 3 sigma on each side.
func convolveGaussian(src image.Image, sigma float64) *image.RGBA {
	reach := int(math.Ceil(3 * sigma))
	k := convolution.NewKernel(2*reach+1, 1)
	for i := range k.Matrix {
		x := float64(i - reach)
		k.Matrix[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	norm := k.Normalized()

	// separable: rows then columns
	opts := &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false}
	out := convolution.Convolve(src, norm, opts)
	return convolution.Convolve(out, norm.Transposed(), opts)
}

// gaussianBlur blurs src as feGaussianBlur does with stdDeviation sigma,
// in pixels.
func gaussianBlur(src *image.RGBA, sigma float64) *image.RGBA {
	if !(sigma > 0) {
		return clone.AsRGBA(src)
	}
	if sigma <= maxDirectSigma {
		return convolveGaussian(src, sigma)
	}
	bounds := src.Bounds()
	factor := sigma / maxDirectSigma
	sw := int(math.Max(1, math.Ceil(float64(bounds.Dx())/factor)))
	sh := int(math.Max(1, math.Ceil(float64(bounds.Dy())/factor)))
	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	xdraw.BiLinear.Scale(small, small.Bounds(), src, bounds, xdraw.Src, nil)

	blurred := convolveGaussian(small, sigma*float64(sw)/float64(bounds.Dx()))

	out := image.NewRGBA(bounds)
	xdraw.BiLinear.Scale(out, bounds, blurred, blurred.Bounds(), xdraw.Src, nil)
	return out
}

// blurSigma converts a feather in user units to pixels. The result never
// exceeds a third of the image diagonal, past which the blur is flat.
func blurSigma(feather float64, vp viewport, w, h int) float64 {
	sigma := feather * vp.scale
	if limit := math.Hypot(float64(w), float64(h)) / 3; sigma > limit {
		sigma = limit
	}
	return sigma
}
