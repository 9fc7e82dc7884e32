package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/df07/go-sphere-raytracer/web/server"
)

// rootOptions holds flags shared by every command
type rootOptions struct {
	cfgFile string
	quiet   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree; rendering is the default action
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Stochastic sphere ray tracer",
		Long: `Renders scenes of spheres with diffuse, metal and glass materials by
recursive Monte Carlo ray tracing and writes PPM or PNG images.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./raytracer.yaml or $HOME/.raytracer/raytracer.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	addRenderFlags(rootCmd.Flags())

	rootCmd.AddCommand(
		renderCmd(opts),
		scenesCmd(),
		serveCmd(opts),
		configCmd(),
	)

	return rootCmd
}

// addRenderFlags registers the flags understood by the config loader
func addRenderFlags(flags *pflag.FlagSet) {
	flags.String("scene", scene.DefaultSceneName, "scene to render (see 'scenes')")
	flags.Int("width", 0, "image width in pixels (0 = scene default)")
	flags.Float64("aspect", 0, "aspect ratio width/height (0 = scene default)")
	flags.Int("samples", 0, "samples per pixel (0 = scene default)")
	flags.Int("depth", 0, "maximum ray bounce depth (scene default when not given)")
	flags.Float64("vfov", 0, "vertical field of view in degrees (0 = scene default)")
	flags.String("look-from", "", "camera position as x,y,z")
	flags.String("look-at", "", "camera target as x,y,z")
	flags.String("view-up", "", "camera up vector as x,y,z")
	flags.Float64("defocus-angle", 0, "defocus cone angle in degrees (scene default when not given)")
	flags.Float64("focus-dist", 0, "focus distance (0 = scene default)")
	flags.Int64("seed", 0, "random seed (0 = scene default)")
	flags.Int("workers", 0, "parallel scanline workers (0 = CPU count)")
	flags.String("format", output.FormatPPM, "output format: ppm, p6 or png")
	flags.StringP("output", "o", "", "output file (default stdout)")
}

func renderCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	addRenderFlags(cmd.Flags())
	return cmd
}

// newLogger creates the stderr console logger used by every command
func newLogger(w io.Writer, level string, quiet bool) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), errorsmod.Wrapf(core.ErrInvalidConfig, "log level %q", level)
	}
	if quiet {
		parsed = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}).
		Level(parsed).
		With().Timestamp().Logger(), nil
}

// loadConfig layers flags, environment and config file
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.RenderConfig, error) {
	loader := config.NewLoader()
	if opts.cfgFile != "" {
		loader.SetConfigFile(opts.cfgFile)
	}
	loader.BindFlags(cmd.Flags())
	return loader.Load()
}

func runRender(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, opts.quiet)
	if err != nil {
		return err
	}

	sceneObj, err := scene.New(cfg.Scene)
	if err != nil {
		return err
	}

	cameraConfig := cfg.ApplyCamera(sceneObj.Camera)
	if err := config.ValidateCamera(cameraConfig); err != nil {
		return err
	}

	format := cfg.Format
	if cfg.Output != "" && !cmd.Flags().Changed("format") {
		format = output.FormatFromPath(cfg.Output, cfg.Format)
	}

	camera := renderer.NewCamera(cameraConfig)
	camera.SetLogger(renderer.NewZerologLogger(logger))

	logger.Info().
		Str("scene", sceneObj.Name).
		Int("width", camera.ImageWidth()).
		Int("height", camera.ImageHeight()).
		Int("samples", cameraConfig.SamplesPerPixel).
		Int("depth", cameraConfig.MaxDepth).
		Int64("seed", cameraConfig.Seed).
		Msg("Starting render")

	fb, stats, err := camera.RenderContext(cmd.Context(), sceneObj.World)
	if err != nil {
		return errorsmod.Wrap(err, "render interrupted")
	}

	logger.Info().
		Int("pixels", stats.TotalPixels).
		Int("total_samples", stats.TotalSamples).
		Int64("rays", stats.RaysCast).
		Int("workers", stats.Workers).
		Dur("elapsed", stats.Elapsed).
		Float64("rays_per_sec", stats.RaysPerSecond()).
		Float64("mean_luminance", stats.MeanLuminance).
		Float64("stddev_luminance", stats.StdDevLuminance).
		Msg("Render completed")

	if cfg.Output == "" {
		return output.Encode(cmd.OutOrStdout(), fb, format)
	}

	if err := writeImageFile(cfg.Output, fb, format); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.Output).Str("format", format).Msg("Render saved")
	return nil
}

// writeImageFile encodes the framebuffer to a new file at path
func writeImageFile(path string, fb *renderer.Framebuffer, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}

	if err := output.Encode(file, fb, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errorsmod.Wrap(core.ErrOutput, err.Error())
	}
	return nil
}

func scenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range scene.List() {
				fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.Description)
			}
			return tw.Flush()
		},
	}
}

func serveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP render server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetInt("port")
			level, _ := cmd.Flags().GetString("log-level")

			logger, err := newLogger(cmd.ErrOrStderr(), level, opts.quiet)
			if err != nil {
				return err
			}

			return server.NewServer(port, logger).Run(cmd.Context())
		},
	}

	cmd.Flags().Int("port", 8080, "port to serve on")

	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
