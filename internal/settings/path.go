package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultPath returns the per-OS location of the settings file:
// Windows %APPDATA%\idleview\settings.json, macOS ~/Library/Application
// Support/idleview/settings.json, Linux ~/.config/idleview/settings.json.
func DefaultPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "idleview", "settings.json"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "idleview", "settings.json"), nil
	case "linux":
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolving config directory: %w", err)
		}
		return filepath.Join(configDir, "idleview", "settings.json"), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
