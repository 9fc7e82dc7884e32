package server

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// WebLogger implements core.Logger by tagging render progress with the render it belongs to
type WebLogger struct {
	renderID string
	logger   zerolog.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, logger zerolog.Logger) core.Logger {
	return &WebLogger{
		renderID: renderID,
		logger:   logger.With().Str("render_id", renderID).Logger(),
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	wl.logger.Debug().Msg(message)
}
