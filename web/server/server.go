package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	logger   zerolog.Logger
	router   *mux.Router
	renderID atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int, logger zerolog.Logger) *Server {
	s := &Server{
		port:   port,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// routes registers the API endpoints
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/scenes", s.handleScenes).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{name}", s.handleSceneConfig).Methods(http.MethodGet)
	api.HandleFunc("/render", s.handleRender).Methods(http.MethodGet)

	return r
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Int("port", s.port).Msgf("Starting web server on http://localhost:%d", s.port)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

// handleSceneConfig returns the default camera configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := mux.Vars(r)["name"]

	sceneObj, err := scene.New(sceneName)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	camera := sceneObj.Camera
	response := map[string]interface{}{
		"scene":       sceneObj.Name,
		"description": sceneObj.Description,
		"objects":     sceneObj.World.Len(),
		"defaults": map[string]interface{}{
			"width":         camera.ImageWidth,
			"aspectRatio":   camera.AspectRatio,
			"samples":       camera.SamplesPerPixel,
			"depth":         camera.MaxDepth,
			"vfov":          camera.VFov,
			"defocusAngle":  camera.DefocusAngle,
			"focusDistance": camera.FocusDistance,
			"seed":          camera.Seed,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": widthLimits.min, "max": widthLimits.max},
			"samples": map[string]int{"min": samplesLimits.min, "max": samplesLimits.max},
			"depth":   map[string]int{"min": depthLimits.min, "max": depthLimits.max},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error as a JSON response
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
