package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/df07/go-sphere-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := pflag.Int("port", 8080, "Port to serve on")
	debug := pflag.Bool("debug", false, "Log per-render progress")
	pflag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create and start web server
	webServer := server.NewServer(*port, logger)

	logger.Info().Msgf("Sphere Raytracer Web Server: try http://localhost:%d/api/render?scene=final", *port)

	if err := webServer.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Error starting server")
		os.Exit(1)
	}
}
