package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

type intLimits struct {
	min, max int
}

var (
	widthLimits   = intLimits{1, 800}
	samplesLimits = intLimits{1, 500}
	depthLimits   = intLimits{0, 50}
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string  // Scene name (e.g., "final")
	Width   int     // Image width, 0 keeps the scene default
	Aspect  float64 // Aspect ratio, 0 keeps the scene default
	Samples int     // Samples per pixel
	Depth   int     // Maximum bounce depth
	Seed    int64   // Random seed
	Format  string  // Output format
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:  scene.DefaultSceneName,
		Format: output.FormatPNG,
	}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}
	if format := query.Get("format"); format != "" {
		req.Format = format
	}
	if _, err := output.ContentType(req.Format); err != nil {
		return nil, err
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 200, widthLimits.min, widthLimits.max); err != nil {
		return nil, err
	}
	if req.Aspect, err = parseFloatParam(query, "aspect", 0, 0.1, 10); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 10, samplesLimits.min, samplesLimits.max); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 10, depthLimits.min, depthLimits.max); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// handleRender renders a scene synchronously and returns the encoded image.
// The render stops early if the client goes away.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	depth := req.Depth
	overrides := &config.RenderConfig{
		Width:       req.Width,
		AspectRatio: req.Aspect,
		Samples:     req.Samples,
		MaxDepth:    &depth,
		Seed:        req.Seed,
	}

	sceneObj, err := scene.New(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cameraConfig := overrides.ApplyCamera(sceneObj.Camera)
	if err := config.ValidateCamera(cameraConfig); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renderID.Add(1))
	camera := renderer.NewCamera(cameraConfig)
	camera.SetLogger(NewWebLogger(renderID, s.logger))

	fb, stats, err := camera.RenderContext(r.Context(), sceneObj.World)
	if err != nil {
		s.logger.Warn().Str("render_id", renderID).Err(err).Msg("Render cancelled")
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info().
		Str("render_id", renderID).
		Str("scene", req.Scene).
		Int("width", stats.Width).
		Int("height", stats.Height).
		Int("samples", stats.SamplesPerPixel).
		Int64("rays", stats.RaysCast).
		Dur("elapsed", stats.Elapsed).
		Msg("Render complete")

	contentType, _ := output.ContentType(req.Format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Rays", strconv.FormatInt(stats.RaysCast, 10))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Mean-Luminance", strconv.FormatFloat(stats.MeanLuminance, 'f', 6, 64))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
