package raster

import (
	"math"
	"math/rand"
)

// maxOctaves bounds the work done per pixel.
const maxOctaves = 10

// valueNoise is a seeded lattice noise: random values on the integer
// grid, smoothly interpolated in between.
type valueNoise struct {
	perm   [512]uint8
	values [256]float64
}

func newValueNoise(seed int) *valueNoise {
	rng := rand.New(rand.NewSource(int64(seed)))
	n := &valueNoise{}
	for i := range n.values {
		n.values[i] = rng.Float64()
	}
	p := rng.Perm(256)
	for i := range n.perm {
		n.perm[i] = uint8(p[i&255])
	}
	return n
}

func (n *valueNoise) lattice(x, y int) float64 {
	return n.values[n.perm[int(n.perm[x&255])+y&255]]
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

// at returns the noise at (x, y), in [0, 1].
func (n *valueNoise) at(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int(x0), int(y0)
	tx, ty := smooth(x-x0), smooth(y-y0)

	v00 := n.lattice(ix, iy)
	v10 := n.lattice(ix+1, iy)
	v01 := n.lattice(ix, iy+1)
	v11 := n.lattice(ix+1, iy+1)

	top := v00 + tx*(v10-v00)
	bottom := v01 + tx*(v11-v01)
	return top + ty*(bottom-top)
}

// fractal sums octaves of noise, each with twice the frequency and half
// the amplitude of the previous one. The result is normalized to [0, 1].
func (n *valueNoise) fractal(x, y, frequency float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	} else if octaves > maxOctaves {
		octaves = maxOctaves
	}
	var sum, norm float64
	amplitude := 1.
	for i := 0; i < octaves; i++ {
		sum += amplitude * n.at(x*frequency, y*frequency)
		norm += amplitude
		amplitude /= 2
		frequency *= 2
	}
	return sum / norm
}
