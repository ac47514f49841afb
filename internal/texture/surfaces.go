package texture

import (
	"image"
	gomath "math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	oceanColor     = mustHex("#5ba3f5")
	continentColor = mustHex("#52d195")
	iceColor       = mustHex("#ffffff")
	mysteryBase    = mustHex("#666666")
	wugaBase       = mustHex("#0b1a2e")
)

var saturnBands = []colorful.Color{
	mustHex("#f4e4bc"),
	mustHex("#e6d2a3"),
	mustHex("#d9c18a"),
	mustHex("#ccb071"),
	mustHex("#bf9f58"),
	mustHex("#b28e3f"),
}

// continent is an elliptical landmass in texture-relative coordinates.
type continent struct {
	cx, cy, rx, ry float64
}

var continents = []continent{
	{0.14, 0.35, 0.09, 0.13}, // north america
	{0.19, 0.71, 0.05, 0.18}, // south america
	{0.47, 0.46, 0.08, 0.28}, // africa and europe
	{0.74, 0.32, 0.16, 0.19}, // asia
	{0.82, 0.72, 0.05, 0.06}, // australia
}

func paintEarth(img *image.RGBA, rng *rand.Rand) {
	fill(img, toRGBA(oceanColor, 1))
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	for _, c := range continents {
		// Two harmonics roughen each outline.
		p1, p2 := rng.Float64()*6.28, rng.Float64()*6.28
		a1, a2 := 0.08+rng.Float64()*0.1, 0.04+rng.Float64()*0.08

		x0, x1 := int((c.cx-c.rx*1.3)*w), int((c.cx+c.rx*1.3)*w)
		y0, y1 := int((c.cy-c.ry*1.3)*h), int((c.cy+c.ry*1.3)*h)
		for y := max(y0, 0); y < min(y1, b.Dy()); y++ {
			for x := max(x0, 0); x < min(x1, b.Dx()); x++ {
				dx := (float64(x)/w - c.cx) / c.rx
				dy := (float64(y)/h - c.cy) / c.ry
				theta := gomath.Atan2(dy, dx)
				edge := 1 + a1*gomath.Sin(3*theta+p1) + a2*gomath.Sin(5*theta+p2)
				if dx*dx+dy*dy < edge*edge {
					img.SetRGBA(x, y, toRGBA(continentColor, 1))
				}
			}
		}
	}

	// Polar caps fade from 0.9 at the pole toward 0.1.
	capRows := int(h * 0.12)
	gradient := h * 0.2
	for y := 0; y < capRows; y++ {
		alpha := capAlpha(float64(y) / gradient)
		for x := 0; x < b.Dx(); x++ {
			blend(img, x, y, iceColor, alpha)
			blend(img, x, b.Dy()-1-y, iceColor, alpha)
		}
	}
}

// capAlpha interpolates the ice gradient stops 0.9, 0.5, 0.1 over t in [0, 1].
func capAlpha(t float64) float64 {
	if t < 0.5 {
		return 0.9 - 0.8*t
	}
	return 0.5 - 0.8*(t-0.5)
}

func paintSaturn(img *image.RGBA, rng *rand.Rand) {
	b := img.Bounds()
	bandHeight := float64(b.Dy()) / float64(len(saturnBands))
	for y := 0; y < b.Dy(); y++ {
		band := min(int(float64(y)/bandHeight), len(saturnBands)-1)
		r, g, bl := saturnBands[band].RGB255()
		for x := 0; x < b.Dx(); x++ {
			v := (rng.Float64() - 0.5) * 10
			img.Pix[img.PixOffset(x, y)+0] = clamp8(float64(r) + v)
			img.Pix[img.PixOffset(x, y)+1] = clamp8(float64(g) + v)
			img.Pix[img.PixOffset(x, y)+2] = clamp8(float64(bl) + v)
			img.Pix[img.PixOffset(x, y)+3] = 255
		}
	}
}

const ringHeight = 32

type ringBand struct {
	start, end float64
	color      colorful.Color
	opacity    float64
}

var ringBands = []ringBand{
	{0.0, 0.2, mustHex("#c4a484"), 0.9},
	{0.2, 0.3, mustHex("#d4b594"), 0.95},
	{0.3, 0.32, mustHex("#e4c5a4"), 0.3}, // cassini division
	{0.32, 0.6, mustHex("#d4b594"), 0.98},
	{0.6, 0.62, mustHex("#c4a484"), 0.4},
	{0.62, 0.85, mustHex("#e4c5a4"), 0.9},
	{0.85, 0.87, mustHex("#b8967b"), 0.2}, // encke gap
	{0.87, 1.0, mustHex("#d4b594"), 0.6},
}

// paintRing draws the ring strip from inner (left) to outer (right) edge.
func paintRing(img *image.RGBA, rng *rand.Rand) {
	b := img.Bounds()
	w := float64(b.Dx())
	for x := 0; x < b.Dx(); x++ {
		u := (float64(x) + 0.5) / w
		band := ringBands[len(ringBands)-1]
		for _, rb := range ringBands {
			if u >= rb.start && u < rb.end {
				band = rb
				break
			}
		}
		alpha := band.opacity
		if x%2 == 0 && rng.Float64() > 0.7 {
			alpha = gomath.Min(alpha*1.3, 1)
		}
		px := toRGBA(band.color, alpha)
		for y := 0; y < b.Dy(); y++ {
			img.SetRGBA(x, y, px)
		}
	}
}

// paintStarSprite draws a soft round glow used for point sprites.
func paintStarSprite(img *image.RGBA) {
	b := img.Bounds()
	half := float64(b.Dx()) / 2
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			img.SetRGBA(x, y, toRGBA(iceColor, spriteAlpha(gomath.Hypot(dx, dy))))
		}
	}
}

func spriteAlpha(d float64) float64 {
	switch {
	case d >= 1:
		return 0
	case d < 0.2:
		return 1 - d
	case d < 0.4:
		return 0.8 - 2.5*(d-0.2)
	default:
		return 0.3 * (1 - (d-0.4)/0.6)
	}
}

// paintMystery draws grey turbulence lightly tinted with the accent.
func paintMystery(img *image.RGBA, rng *rand.Rand, accent colorful.Color) {
	b := img.Bounds()
	noise := newValueNoise(rng, 16, 8)
	tint := mysteryBase.BlendRgb(accent, 0.2)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			u := float64(x) / float64(b.Dx())
			v := float64(y) / float64(b.Dy())
			n := noise.turbulence(u, v, 4)
			img.SetRGBA(x, y, toRGBA(tint.BlendRgb(iceColor, n*0.35).BlendRgb(colorful.Color{}, (1-n)*0.4), 1))
		}
	}
}

// paintWugaTech draws a circuit-like accent grid on a dark base.
func paintWugaTech(img *image.RGBA, accent colorful.Color) {
	fill(img, toRGBA(wugaBase, 1))
	b := img.Bounds()
	step := max(b.Dx()/16, 2)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			onX, onY := x%step == 0, y%step == 0
			switch {
			case onX && onY:
				blend(img, x, y, accent.BlendRgb(iceColor, 0.5), 1)
			case onX || onY:
				blend(img, x, y, accent, 0.7)
			}
		}
	}
}

// valueNoise is a wrapping lattice of random values sampled bilinearly.
type valueNoise struct {
	w, h int
	grid []float64
}

func newValueNoise(rng *rand.Rand, w, h int) *valueNoise {
	n := &valueNoise{w: w, h: h, grid: make([]float64, w*h)}
	for i := range n.grid {
		n.grid[i] = rng.Float64()
	}
	return n
}

func (n *valueNoise) at(x, y int) float64 {
	x = ((x % n.w) + n.w) % n.w
	y = ((y % n.h) + n.h) % n.h
	return n.grid[y*n.w+x]
}

// sample returns smoothed noise at texture coordinates scaled by freq.
func (n *valueNoise) sample(u, v, freq float64) float64 {
	fx, fy := u*float64(n.w)*freq, v*float64(n.h)*freq
	x0, y0 := int(gomath.Floor(fx)), int(gomath.Floor(fy))
	tx, ty := smooth(fx-float64(x0)), smooth(fy-float64(y0))
	a := n.at(x0, y0)*(1-tx) + n.at(x0+1, y0)*tx
	c := n.at(x0, y0+1)*(1-tx) + n.at(x0+1, y0+1)*tx
	return a*(1-ty) + c*ty
}

// turbulence sums octaves of noise, normalized to [0, 1].
func (n *valueNoise) turbulence(u, v float64, octaves int) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += amp * n.sample(u, v, freq)
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}
