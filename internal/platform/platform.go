package platform

import (
	"os"
	"os/user"
	"runtime"
)

// AppName is the directory name used below the user's data and config dirs
const AppName = "wordguard"

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Info contains platform-specific paths
type Info struct {
	OutputDir string
	ConfigDir string
	// SkipDirs are virtual or system trees a whole-disk scan never enters
	SkipDirs []string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo returns platform-specific information
func GetInfo() (*Info, error) {
	platform := Detect()
	if platform == Unknown {
		return nil, ErrUnsupportedPlatform
	}

	home, err := homeDir()
	if err != nil {
		return nil, err
	}

	switch platform {
	case MacOS:
		return getMacOSInfo(home), nil
	default:
		return getLinuxInfo(home, os.Getenv("XDG_DATA_HOME"), os.Getenv("XDG_CONFIG_HOME")), nil
	}
}

// DefaultOutputDir returns where copies and the report go when nothing else
// is configured
func DefaultOutputDir() (string, error) {
	info, err := GetInfo()
	if err != nil {
		return "", err
	}
	return info.OutputDir, nil
}

func homeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return "", err
	}
	return currentUser.HomeDir, nil
}

// Errors
var (
	ErrUnsupportedPlatform = &PlatformError{"unsupported platform"}
)

// PlatformError represents a platform-related error
type PlatformError struct {
	Message string
}

func (e *PlatformError) Error() string {
	return e.Message
}
