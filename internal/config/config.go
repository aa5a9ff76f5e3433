// Package config reads the ~/.starflowrc settings file.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"starflow/internal/anim"
)

type Config struct {
	ExportDirectory string
	Animate         bool
	FPS             int
	PhaseStep       float64
}

func Default() *Config {
	return &Config{
		ExportDirectory: "",
		Animate:         true,
		FPS:             30,
		PhaseStep:       anim.DefaultPhaseStep,
	}
}

// DefaultPath returns the rc file location in the user's home directory.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".starflowrc")
}

// Load reads key = value lines from path. A missing or unreadable file just
// yields the defaults; malformed lines and unknown keys are skipped.
func Load(path string) *Config {
	config := Default()
	if path == "" {
		return config
	}

	file, err := os.Open(path)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "exportdirectory", "export_directory", "exportdir":
			if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(value, "~") {
				value = filepath.Join(home, strings.TrimPrefix(value, "~"))
			}
			config.ExportDirectory = value
		case "animate", "animation":
			config.Animate = strings.ToLower(value) == "true"
		case "fps":
			if fps, err := strconv.Atoi(value); err == nil && fps > 0 {
				config.FPS = fps
			}
		case "phasestep", "phase_step":
			if step, err := strconv.ParseFloat(value, 64); err == nil && step > 0 {
				config.PhaseStep = step
			}
		}
	}

	return config
}

// FrameInterval converts the configured FPS to a tick interval.
func (c *Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// ExportPath resolves an export filename against the configured directory.
func (c *Config) ExportPath(filename string) string {
	if c.ExportDirectory == "" {
		return filename
	}
	os.MkdirAll(c.ExportDirectory, 0755)
	return filepath.Join(c.ExportDirectory, filename)
}
