package platform

import "path/filepath"

// getMacOSInfo returns platform-specific information for macOS
func getMacOSInfo(homeDir string) *Info {
	return &Info{
		OutputDir: macOSOutputDir(homeDir),
		ConfigDir: filepath.Join(homeDir, ".config", AppName),
		SkipDirs: []string{
			"/dev",
			"/System/Volumes",
			"/private/var/vm",
			"/Volumes/Recovery",
			filepath.Join(homeDir, ".Trash"),
			filepath.Join(homeDir, "Library/Caches"),
		},
	}
}

func macOSOutputDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support", "WordGuard", "output")
}
