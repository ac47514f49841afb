package main

import (
	"fmt"
	"image"
	gomath "math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/camera"
	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/lighting"
	"github.com/Faultbox/founder-galaxy/internal/picking"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/internal/scene"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

const (
	fovY = 60 * gomath.Pi / 180
	near = 0.1
	far  = 3000
	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0
)

var sunDirection = lighting.SunDirection(45, 30)

// frame holds the per-frame projection state shared by the draw passes.
type frame struct {
	w, h     int
	viewProj math.Mat4
	inverse  math.Mat4
	eye      math.Vec3
	maxDist  float64
	depth    []float64
}

// planetRadius shrinks distant planets the way the camera does.
func (f *frame) planetRadius(poi registry.PointOfInterest) float64 {
	return camera.PlanetScale(poi.Scale, poi.Position.Distance(f.eye), f.maxDist)
}

func (v *Viewer) newFrame() (*frame, bool) {
	if v.width <= 0 || v.height <= 0 {
		return nil, false
	}
	var view math.Mat4
	var eye math.Vec3
	v.session.WithCamera(func(c *camera.OrbitCamera) {
		view = c.ViewMatrix()
		eye = c.Position()
	})
	aspect := float64(v.width) / (float64(v.height) * cellAspect)
	vp := math.Perspective(fovY, aspect, near, far).Mul(view)
	inv, ok := vp.Inverse()
	if !ok {
		return nil, false
	}
	f := &frame{
		w:        v.width,
		h:        v.height,
		viewProj: vp,
		inverse:  inv,
		eye:      eye,
		maxDist:  v.maxDistance,
		depth:    make([]float64, v.width*v.height),
	}
	for i := range f.depth {
		f.depth[i] = gomath.Inf(1)
	}
	return f, true
}

// cell projects p and returns its cell and eye distance.
func (f *frame) cell(p math.Vec3) (x, y int, dist float64, ok bool) {
	ndc, ok := f.viewProj.Project(p)
	if !ok || ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	x = int((ndc.X + 1) / 2 * float64(f.w))
	y = int((1 - ndc.Y) / 2 * float64(f.h))
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return 0, 0, 0, false
	}
	return x, y, p.Distance(f.eye), true
}

// plot draws r at p unless something nearer already owns the cell.
func (v *Viewer) plot(f *frame, p math.Vec3, r rune, c galaxy.Color) {
	x, y, d, ok := f.cell(p)
	if !ok || d >= f.depth[y*f.w+x] {
		return
	}
	f.depth[y*f.w+x] = d
	v.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(rgb(c)))
}

func (v *Viewer) draw(now time.Time) {
	v.screen.Clear()
	snap := v.session.Snapshot(now)
	f, ok := v.newFrame()
	if !ok {
		v.screen.Show()
		return
	}

	field := snap.Field
	if field.Backdrop != nil {
		dim := galaxy.Color{R: 0.35, G: 0.35, B: 0.45}
		for _, p := range field.Backdrop.Shell {
			v.plot(f, p, '.', dim)
		}
		for _, p := range field.Backdrop.Gas {
			v.plot(f, p, '░', galaxy.Color{R: 0.25, G: 0.2, B: 0.35})
		}
		for _, p := range field.Backdrop.Dust {
			v.plot(f, p, '·', galaxy.Color{R: 0.4, G: 0.35, B: 0.3})
		}
	}

	for _, cl := range field.Nebulae {
		for _, layer := range cl.Layers {
			for _, p := range layer.Particles {
				v.plot(f, p.Position, '░', p.Color.Scale(0.4+layer.Opacity))
			}
		}
	}

	for i, s := range field.Stars {
		c := s.Color
		if snap.Hints.Twinkle {
			c = c.Scale(0.75 + 0.25*gomath.Sin(float64(now.UnixMilli())/400+float64(i)))
		}
		v.plot(f, s.Position, starRune(s.Size), c)
	}

	for i, a := range field.Asteroids {
		shade := 0.6
		if i < len(snap.Orientations) {
			shade += 0.4 * gomath.Abs(gomath.Sin(snap.Orientations[i].Y))
		}
		v.plot(f, a.Position, asteroidRune(a.Geometry), a.Color.Scale(shade))
	}

	v.drawPlanets(f, snap)
	v.drawHUD(snap)
	v.screen.Show()
}

// drawPlanets ray casts every cell against the registry spheres and shades
// hits from the surface texture.
func (v *Viewer) drawPlanets(f *frame, snap scene.Snapshot) {
	reg := v.session.Registry()
	if !snap.Planets || reg.Len() == 0 {
		return
	}
	var light *lighting.PointLight
	if snap.Hints.DynamicLighting {
		light = snap.Light
	}

	textures := make(map[string]*image.RGBA, reg.Len())
	for _, poi := range reg.All() {
		img, err := v.session.Texture(poi)
		if err != nil {
			v.log.Warn("texture unavailable", zap.String("id", poi.ID), zap.Error(err))
			continue
		}
		textures[poi.ID] = img
	}

	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			ray := picking.ScreenToRay(float64(x)+0.5, float64(y)+0.5, float64(f.w), float64(f.h), f.inverse)
			hit, ok := picking.PickPlanetFunc(ray, reg, f.planetRadius)
			if !ok {
				continue
			}
			point := ray.At(hit.Distance)
			if point.Distance(f.eye) >= f.depth[y*f.w+x] {
				continue
			}
			normal := point.Sub(hit.POI.Position).Normalize()
			base := surfaceColor(hit.POI, textures[hit.POI.ID], normal)
			shade := lighting.Shade(point, normal, sunDirection, light)
			r := '█'
			switch hit.POI.ID {
			case snap.Interaction.SelectedID:
				r = '▓'
			case snap.Interaction.HoveredID:
				r = '▒'
			}
			v.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(rgb(base.Scale(shade))))
		}
	}
}

// surfaceColor samples the equirectangular texture at normal, falling back
// to the accent color.
func surfaceColor(poi registry.PointOfInterest, img *image.RGBA, normal math.Vec3) galaxy.Color {
	if img == nil {
		return galaxy.Color{R: poi.Accent.R, G: poi.Accent.G, B: poi.Accent.B}
	}
	b := img.Bounds()
	u := 0.5 + gomath.Atan2(normal.Z, normal.X)/(2*gomath.Pi)
	t := 0.5 - gomath.Asin(math.Clamp(normal.Y, -1, 1))/gomath.Pi
	px := b.Min.X + int(math.Clamp(u, 0, 0.999)*float64(b.Dx()))
	py := b.Min.Y + int(math.Clamp(t, 0, 0.999)*float64(b.Dy()))
	c := img.RGBAAt(px, py)
	return galaxy.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (v *Viewer) drawHUD(snap scene.Snapshot) {
	qc := v.session.Quality()
	profile := qc.Current()
	status := fmt.Sprintf(" %s | %s | %d stars | %.0f fps (avg %.0f) | %s ",
		snap.Field.Mode, qc.Tier(), len(snap.Field.Stars), v.lastFPS, qc.AverageFPS(), snap.Camera.Mode)
	v.text(0, 0, status, tcell.StyleDefault.Reverse(true))
	v.text(0, v.height-1, " drag: rotate  wheel: zoom  click: select  esc: close  c: mode  q: quit ", tcell.StyleDefault.Dim(true))

	machine := v.session.Interaction()
	if snap.Interaction.HoverCardVisible() {
		if poi, ok := machine.Hovered(); ok {
			v.card(v.mouseX+2, v.mouseY+1, poi, false)
		}
	}
	if poi, ok := machine.Selected(); ok {
		v.card(1, 2, poi, true)
	}
	if !profile.EnableAtmosphericEffects && v.width > 20 {
		v.text(v.width-14, 1, " atmos: off ", tcell.StyleDefault.Dim(true))
	}
}

// card draws a point of interest summary box. The detail card also lists
// links.
func (v *Viewer) card(x, y int, poi registry.PointOfInterest, detail bool) {
	lines := []string{
		poi.Name,
		poi.Company + " · " + poi.Category.Label(),
	}
	if detail {
		if poi.Description != "" {
			lines = append(lines, poi.Description)
		}
		for _, l := range []string{poi.Links.Website, poi.Links.LinkedIn, poi.Links.Twitter} {
			if l != "" {
				lines = append(lines, l)
			}
		}
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	if x+width+2 > v.width {
		x = max(0, v.width-width-2)
	}
	if y+len(lines) > v.height-1 {
		y = max(1, v.height-1-len(lines))
	}
	style := tcell.StyleDefault.Background(rgb(galaxy.Color{R: poi.Accent.R, G: poi.Accent.G, B: poi.Accent.B}.Scale(0.35))).
		Foreground(tcell.ColorWhite)
	for i, l := range lines {
		padded := fmt.Sprintf(" %-*s ", width, l)
		if i == 0 {
			v.text(x, y+i, padded, style.Bold(true))
			continue
		}
		v.text(x, y+i, padded, style)
	}
}

func (v *Viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func starRune(size float64) rune {
	switch {
	case size >= 3.5:
		return '*'
	case size >= 2:
		return '+'
	default:
		return '.'
	}
}

func asteroidRune(g galaxy.GeometryVariant) rune {
	switch g {
	case galaxy.Dodecahedron:
		return 'o'
	case galaxy.Icosahedron:
		return '◆'
	case galaxy.Octahedron:
		return '◇'
	default:
		return '^'
	}
}

func rgb(c galaxy.Color) tcell.Color {
	to8 := func(v float64) int32 { return int32(math.Clamp(v, 0, 1) * 255) }
	return tcell.NewRGBColor(to8(c.R), to8(c.G), to8(c.B))
}
