package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// execute runs the CLI with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScenesCommand(t *testing.T) {
	stdout, _, err := execute(t, "scenes")
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}

	for _, name := range []string{"final", "materials", "defocus", "diffuse", "ring"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("Expected %q in scene list:\n%s", name, stdout)
		}
	}
}

func TestRenderToStdout(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"default action", []string{"--scene", "diffuse", "--width", "4", "--samples", "1", "--depth", "3"}},
		{"render subcommand", []string{"render", "--scene", "diffuse", "--width", "4", "--samples", "1", "--depth", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("render failed: %v\n%s", err, stderr)
			}

			if !strings.HasPrefix(stdout, "P3\n4 4\n255\n") {
				t.Errorf("Unexpected PPM header: %q", stdout[:min(len(stdout), 16)])
			}
			lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
			if len(lines) != 3+16 {
				t.Errorf("Expected 19 lines, got %d", len(lines))
			}
			if !strings.Contains(stderr, "Scanlines remaining: 0") {
				t.Errorf("Expected progress on stderr, got:\n%s", stderr)
			}
		})
	}
}

func TestRenderQuiet(t *testing.T) {
	_, stderr, err := execute(t, "--quiet", "--scene", "diffuse", "--width", "2", "--samples", "1", "--depth", "1")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if stderr != "" {
		t.Errorf("Expected no log output in quiet mode, got:\n%s", stderr)
	}
}

func TestRenderSingleSphereTinyImage(t *testing.T) {
	stdout, _, err := execute(t, "-q", "--scene", "diffuse", "--width", "2", "--aspect", "1", "--samples", "1", "--depth", "1")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	header := "P3\n2 2\n255\n"
	if !strings.HasPrefix(stdout, header) {
		t.Fatalf("Expected header %q, got %q", header, stdout[:min(len(stdout), len(header))])
	}

	rows := strings.Split(strings.TrimSuffix(strings.TrimPrefix(stdout, header), "\n"), "\n")
	if len(rows) != 4 {
		t.Fatalf("Expected 4 pixel lines, got %d: %q", len(rows), rows)
	}
	for i, row := range rows {
		fields := strings.Fields(row)
		if len(fields) != 3 {
			t.Fatalf("Pixel %d: expected 3 components, got %q", i, row)
		}
		for _, field := range fields {
			value, err := strconv.Atoi(field)
			if err != nil {
				t.Fatalf("Pixel %d: component %q is not an integer", i, field)
			}
			if value < 0 || value > 255 {
				t.Errorf("Pixel %d: component %d out of [0,255]", i, value)
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	args := []string{"-q", "--scene", "materials", "--width", "12", "--samples", "2", "--depth", "6", "--seed", "3"}

	first, _, err := execute(t, append(args, "--workers", "1")...)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	second, _, err := execute(t, append(args, "--workers", "3")...)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if first != second {
		t.Error("Output should not depend on the worker count")
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")

	stdout, _, err := execute(t, "-q", "--scene", "defocus", "--width", "16", "--samples", "1", "--depth", "2", "-o", path)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("Nothing should be written to stdout, got %d bytes", len(stdout))
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Format should be inferred from the .png extension: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Expected 16x9 image, got %v", img.Bounds())
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown scene", []string{"--scene", "cornell"}, core.ErrUnknownScene},
		{"negative width", []string{"--width", "-3"}, core.ErrInvalidConfig},
		{"bad vector", []string{"--look-from", "1,2"}, core.ErrInvalidConfig},
		{"unknown format", []string{"--format", "gif"}, core.ErrUnsupportedFormat},
		{"missing config", []string{"--config", "does-not-exist.yaml"}, core.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"-q"}, tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRenderWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	content := "scene: diffuse\nwidth: 3\nsamples: 1\nmax_depth: 2\nformat: p6\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	stdout, _, err := execute(t, "-q", "--config", cfgPath, "--width", "2")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	// Flag width wins over the file; format comes from the file
	if !strings.HasPrefix(stdout, "P6\n2 2\n255\n") {
		t.Errorf("Unexpected output header %q", stdout[:min(len(stdout), 12)])
	}
	if len(stdout) != len("P6\n2 2\n255\n")+2*2*3 {
		t.Errorf("Unexpected P6 size %d", len(stdout))
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raytracer.yaml")

	stdout, _, err := execute(t, "config", "init", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(stdout, path) {
		t.Errorf("Expected saved path in output, got %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Config not written: %v", err)
	}
	if !strings.Contains(string(data), "scene: final") {
		t.Errorf("Unexpected config content:\n%s", data)
	}

	if _, _, err := execute(t, "config", "init", path); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected refusal to overwrite, got %v", err)
	}
	if _, _, err := execute(t, "config", "init", "--force", path); err != nil {
		t.Errorf("Forced overwrite failed: %v", err)
	}
}
