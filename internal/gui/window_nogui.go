//go:build nogui
// +build nogui

package gui

import (
	"fmt"

	"dndbridge/internal/config"
)

// Run is a stub implementation for builds with GUI disabled
func Run(cfg *config.Config, recordPath string) error {
	return fmt.Errorf("GUI not available in this build")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
