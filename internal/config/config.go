// SPDX-License-Identifier: EPL-2.0

// Package config reads the command line tool's settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	TrackWidth int    // pixels, one waveform column each
	TargetRate int    // Hz, 0 keeps the file rate
	BufferSize int    // samples per decoder read
	LogLevel   string // any logrus level name
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		TrackWidth: envInt("WAVESEL_TRACK_WIDTH", 80),
		TargetRate: envInt("WAVESEL_TARGET_RATE", 0),
		BufferSize: envInt("WAVESEL_BUFFER_SIZE", 4096),
		LogLevel:   envStr("WAVESEL_LOG_LEVEL", "warning"),
	}
}

// Level parses LogLevel, falling back to warning for unknown names.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
