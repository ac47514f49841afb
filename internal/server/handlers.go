package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/interaction"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/internal/scene"
	"github.com/Faultbox/founder-galaxy/internal/texture"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

const maxTextureSize = 2048

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	f := s.session.Field()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"stars":  len(f.Stars),
		"mode":   f.Mode,
	})
}

func (s *Server) handleGalaxy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot(s.now()))
}

type poiView struct {
	registry.PointOfInterest
	Accent        string `json:"accent"`
	CategoryLabel string `json:"categoryLabel"`
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	all := s.session.Registry().All()
	out := make([]poiView, len(all))
	for i, p := range all {
		out[i] = poiView{PointOfInterest: p, Accent: p.AccentHex(), CategoryLabel: p.Category.Label()}
	}
	writeJSON(w, http.StatusOK, out)
}

type qualityView struct {
	Tier       quality.Tier    `json:"tier"`
	Device     quality.Device  `json:"device"`
	Profile    quality.Profile `json:"profile"`
	AverageFPS float64         `json:"averageFps"`
	History    []float64       `json:"history"`
	Hints      scene.Hints     `json:"hints"`
}

func (s *Server) qualityView() qualityView {
	qc := s.session.Quality()
	p := qc.Current()
	return qualityView{
		Tier:       qc.Tier(),
		Device:     qc.Device(),
		Profile:    p,
		AverageFPS: qc.AverageFPS(),
		History:    qc.History(),
		Hints:      scene.HintsFor(p),
	}
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.qualityView())
}

type samplesRequest struct {
	FPS     *float64  `json:"fps,omitempty"`
	Samples []float64 `json:"samples,omitempty"`
}

// handleSamples records frame-rate windows measured by the browser.
func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	var req samplesRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	samples := req.Samples
	if req.FPS != nil {
		samples = append(samples, *req.FPS)
	}
	if len(samples) == 0 {
		writeError(w, r, s.log, invalid(errors.New("no fps samples")))
		return
	}
	for _, fps := range samples {
		if fps < 0 {
			writeError(w, r, s.log, invalid(fmt.Errorf("fps must be >= 0, got %v", fps)))
			return
		}
	}

	qc := s.session.Quality()
	for _, fps := range samples {
		qc.Sample(fps)
	}
	if _, err := s.session.Sync(); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s.qualityView())
}

// handleProbe reclassifies the client device. The user agent header is
// used when the body carries none.
func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	var dev quality.Device
	if err := decode(w, r, &dev); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	if dev.UserAgent == "" {
		dev.UserAgent = r.UserAgent()
	}
	s.session.Quality().Reprobe(dev)
	if _, err := s.session.Sync(); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s.qualityView())
}

type interactionView struct {
	interaction.State
	HoverCardVisible bool `json:"hoverCardVisible"`
}

func (s *Server) interactionView() interactionView {
	st := s.session.Interaction().State()
	return interactionView{State: st, HoverCardVisible: st.HoverCardVisible()}
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.interactionView())
}

type idRequest struct {
	ID string `json:"id"`
}

func (s *Server) decodeID(w http.ResponseWriter, r *http.Request) (string, error) {
	var req idRequest
	if err := decode(w, r, &req); err != nil {
		return "", err
	}
	if req.ID == "" {
		return "", invalid(errors.New("id is required"))
	}
	return req.ID, nil
}

func (s *Server) handleOver(w http.ResponseWriter, r *http.Request) {
	id, err := s.decodeID(w, r)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	if !s.session.PlanetsVisible() {
		writeError(w, r, s.log, invalid(scene.ErrPlanetsHidden))
		return
	}
	accepted, err := s.session.Interaction().PointerOver(id, s.now())
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Accepted bool `json:"accepted"`
		interactionView
	}{accepted, s.interactionView()})
}

func (s *Server) handleOut(w http.ResponseWriter, r *http.Request) {
	s.session.Interaction().PointerOut()
	writeJSON(w, http.StatusOK, s.interactionView())
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	id, err := s.decodeID(w, r)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	if !s.session.PlanetsVisible() {
		writeError(w, r, s.log, invalid(scene.ErrPlanetsHidden))
		return
	}
	if err := s.session.Interaction().Click(id); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s.interactionView())
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	s.session.Interaction().CloseSelection()
	writeJSON(w, http.StatusOK, s.interactionView())
}

// moveRequest carries either client pixels with the viewport size, or
// normalized device coordinates.
type moveRequest struct {
	ClientX float64    `json:"clientX"`
	ClientY float64    `json:"clientY"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	NDC     *math.Vec2 `json:"ndc,omitempty"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	m := s.session.Interaction()
	switch {
	case req.NDC != nil:
		m.SetPointer(*req.NDC)
	case req.Width > 0 && req.Height > 0:
		m.PointerMove(req.ClientX, req.ClientY, req.Width, req.Height)
	default:
		writeError(w, r, s.log, invalid(errors.New("need ndc or a positive viewport size")))
		return
	}
	writeJSON(w, http.StatusOK, s.interactionView())
}

type modeRequest struct {
	Mode galaxy.Mode `json:"mode"`
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	if err := s.session.SetMode(req.Mode); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	f := s.session.Field()
	s.log.Info("mode changed", zap.Stringer("mode", f.Mode), zap.Int("stars", len(f.Stars)))
	writeJSON(w, http.StatusOK, f.Report)
}

// handleTexture renders a planet texture as PNG. Query parameters: id
// (use a registry entry's name and accent), name, accent (#rrggbb), size,
// kind (surface, ring, star).
func (s *Server) handleTexture(w http.ResponseWriter, r *http.Request) {
	key, err := s.textureKey(r)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	img, err := s.session.Textures().Get(key)
	if err != nil {
		writeError(w, r, s.log, invalid(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if err := texture.EncodePNG(w, img); err != nil {
		s.log.Warn("png encode failed", zap.Error(err))
	}
}

func (s *Server) textureKey(r *http.Request) (texture.Key, error) {
	cat, err := registry.ParseCategory(r.PathValue("category"))
	if err != nil {
		return texture.Key{}, err
	}
	q := r.URL.Query()

	key := texture.Key{
		Category: cat,
		Name:     q.Get("name"),
		Size:     s.session.Hints().TextureSize,
	}
	if id := q.Get("id"); id != "" {
		poi, ok := s.session.Registry().Lookup(id)
		if !ok {
			return texture.Key{}, fmt.Errorf("%w: %q", interaction.ErrUnknownPOI, id)
		}
		key = texture.KeyFor(poi, key.Size)
		key.Category = cat
	}
	if hex := q.Get("accent"); hex != "" {
		c, err := colorful.Hex(hex)
		if err != nil {
			return texture.Key{}, invalid(fmt.Errorf("accent: %w", err))
		}
		key.Accent = c
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 2 || size > maxTextureSize {
			return texture.Key{}, invalid(fmt.Errorf("size must be in [2, %d], got %q", maxTextureSize, raw))
		}
		key.Size = size
	}
	kind, err := texture.ParseKind(q.Get("kind"))
	if err != nil {
		return texture.Key{}, invalid(err)
	}
	key.Kind = kind
	return key, nil
}
