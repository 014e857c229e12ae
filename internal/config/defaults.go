package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Roots:             []string{}, // empty means every local drive
		OutputDir:         "",         // platform default
		Words:             []string{},
		ExcludePattern:    []string{},
		SkipDirs:          []string{},
		MaxFileSize:       "256MB", // whole files are read into memory
		Workers:           4,
		PausePollInterval: "100ms",
		CollisionPolicy:   "overwrite",
		LogLevel:          "warn",
		ReportFormat:      "table",
	}
}

// ParseSize parses sizes such as "512", "64KB", "1.5GB". An empty string
// means no limit and parses to 0.
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	for _, unit := range []struct {
		suffix string
		mult   int64
	}{
		{"TB", 1 << 40},
		{"GB", 1 << 30},
		{"MB", 1 << 20},
		{"KB", 1 << 10},
		{"B", 1},
	} {
		if strings.HasSuffix(s, unit.suffix) {
			multiplier = unit.mult
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			break
		}
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if val < 0 {
		return 0, fmt.Errorf("size must be >= 0")
	}

	n := val * float64(multiplier)
	if !(n < math.MaxInt64) {
		return 0, fmt.Errorf("size %q is too large", s)
	}

	return int64(n), nil
}
