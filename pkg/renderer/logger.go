package renderer

import (
	"fmt"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/rs/zerolog"
)

// ZerologLogger implements core.Logger on top of a structured zerolog logger
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger wraps a zerolog logger; messages are emitted at info level
func NewZerologLogger(logger zerolog.Logger) core.Logger {
	return &ZerologLogger{logger: logger}
}

func (zl *ZerologLogger) Printf(format string, args ...interface{}) {
	zl.logger.Info().Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() core.Logger {
	return NopLogger{}
}
