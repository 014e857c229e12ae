package platform

import "path/filepath"

// getLinuxInfo returns platform-specific information for Linux. Empty XDG
// values fall back to the directories below home.
func getLinuxInfo(homeDir, xdgDataHome, xdgConfigHome string) *Info {
	configDir := filepath.Join(homeDir, ".config", AppName)
	if xdgConfigHome != "" {
		configDir = filepath.Join(xdgConfigHome, AppName)
	}

	return &Info{
		OutputDir: linuxOutputDir(homeDir, xdgDataHome),
		ConfigDir: configDir,
		SkipDirs: []string{
			"/proc",
			"/sys",
			"/dev",
			"/run",
			"/snap",
			"/var/lib/docker",
			filepath.Join(homeDir, ".local/share/Trash"),
		},
	}
}

// linuxOutputDir follows the XDG base directory layout
func linuxOutputDir(homeDir, xdgDataHome string) string {
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, AppName, "output")
	}
	return filepath.Join(homeDir, ".local", "share", AppName, "output")
}
