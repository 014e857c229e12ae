package utils

import (
	"path/filepath"
	"strings"
)

const (
	// MinTerminalWidth is the minimum recommended terminal width
	MinTerminalWidth = 80
	// MinTerminalHeight is the minimum recommended terminal height
	MinTerminalHeight = 24
)

// TruncatePath shortens path to maxWidth, keeping the file name and as many
// trailing directories as fit behind a leading "...".
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}
	if maxWidth < 10 {
		return "..."
	}

	sep := string(filepath.Separator)
	parts := strings.Split(path, sep)

	// The file name alone is too long: keep its tail
	file := parts[len(parts)-1]
	if len(file)+4 > maxWidth {
		return "..." + file[len(file)-(maxWidth-3):]
	}

	kept := file
	for i := len(parts) - 2; i >= 0; i-- {
		candidate := parts[i] + sep + kept
		if len(candidate)+4 > maxWidth {
			break
		}
		kept = candidate
	}
	return "..." + sep + kept
}

// TruncateString truncates a string to maxLen, adding ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}

// CalculatePageSize returns how many log lines fit under the header and
// above the status bar
func CalculatePageSize(terminalHeight int) int {
	const reservedLines = 12

	pageSize := terminalHeight - reservedLines
	if pageSize < 5 {
		pageSize = 5
	}
	return pageSize
}

// IsTerminalTooSmall checks if the terminal is below minimum recommended size
func IsTerminalTooSmall(width, height int) bool {
	return width < MinTerminalWidth || height < MinTerminalHeight
}
