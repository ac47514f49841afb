// Package texture synthesizes planet surface textures. Every buffer is a
// pure function of its Key, so results can be cached and shared freely.
package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"io"
	gomath "math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
)

var errInvalidBounds = errors.New("texture: empty target bounds")

// Kind selects which texture of a planet is produced.
type Kind int

const (
	KindSurface Kind = iota
	KindRing
	KindStarSprite
)

func (k Kind) String() string {
	switch k {
	case KindRing:
		return "ring"
	case KindStarSprite:
		return "star"
	default:
		return "surface"
	}
}

// ParseKind parses a kind name. The empty string is a surface.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "surface":
		return KindSurface, nil
	case "ring":
		return KindRing, nil
	case "star":
		return KindStarSprite, nil
	default:
		return 0, fmt.Errorf("texture: unknown kind %q", s)
	}
}

// Key identifies one texture. Size is the image width in pixels.
type Key struct {
	Kind     Kind
	Category registry.Category
	Name     string
	Accent   colorful.Color
	Size     int
}

// KeyFor returns the surface key of a point of interest at the given size.
func KeyFor(poi registry.PointOfInterest, size int) Key {
	return Key{
		Kind:     KindSurface,
		Category: poi.Category,
		Name:     poi.Name,
		Accent:   poi.Accent,
		Size:     size,
	}
}

// ForQuality returns the texture width used at a particle quality level.
func ForQuality(l quality.Level) int {
	switch l {
	case quality.LevelHigh:
		return 1024
	case quality.LevelMedium:
		return 512
	default:
		return 256
	}
}

// seed hashes every field of the key into a noise seed.
func (k Key) seed() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k.Kind)<<32|uint64(k.Category))
	h.Write(buf[:])
	h.Write([]byte(k.Name))
	for _, v := range []float64{k.Accent.R, k.Accent.G, k.Accent.B} {
		binary.LittleEndian.PutUint64(buf[:], gomath.Float64bits(v))
		h.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(k.Size))
	h.Write(buf[:])
	return h.Sum64()
}

func (k Key) validate() error {
	if k.Size < 2 {
		return fmt.Errorf("texture size must be >= 2, got %d", k.Size)
	}
	return nil
}

// Bounds returns the image rectangle a key produces.
func (k Key) Bounds() image.Rectangle {
	switch k.Kind {
	case KindRing:
		return image.Rect(0, 0, k.Size, ringHeight)
	case KindStarSprite:
		return image.Rect(0, 0, k.Size, k.Size)
	default:
		return image.Rect(0, 0, k.Size, max(k.Size/2, 1))
	}
}

// Synthesize renders the texture for key.
func Synthesize(key Key) (*image.RGBA, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	img := image.NewRGBA(key.Bounds())
	rng := rand.New(rand.NewPCG(key.seed(), uint64(key.Size)))

	switch key.Kind {
	case KindRing:
		paintRing(img, rng)
	case KindStarSprite:
		paintStarSprite(img)
	default:
		switch key.Category {
		case registry.CategoryEarth:
			paintEarth(img, rng)
		case registry.CategorySaturn:
			paintSaturn(img, rng)
		case registry.CategoryWugaTech:
			paintWugaTech(img, key.Accent)
		default:
			paintMystery(img, rng, key.Accent)
		}
	}
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func toRGBA(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	a := clamp8(alpha * 255)
	return color.RGBA{
		R: uint8(float64(r) * alpha),
		G: uint8(float64(g) * alpha),
		B: uint8(float64(b) * alpha),
		A: a,
	}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// blend mixes c over the pixel at (x, y) with the given opacity.
func blend(img *image.RGBA, x, y int, c colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	dst := img.RGBAAt(x, y)
	a := gomath.Min(alpha, 1)
	r, g, b := c.Clamped().RGB255()
	img.SetRGBA(x, y, color.RGBA{
		R: clamp8(float64(dst.R)*(1-a) + float64(r)*a),
		G: clamp8(float64(dst.G)*(1-a) + float64(g)*a),
		B: clamp8(float64(dst.B)*(1-a) + float64(b)*a),
		A: clamp8(float64(dst.A)*(1-a) + 255*a),
	})
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
