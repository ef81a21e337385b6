package storage

import (
	"os"
	"path/filepath"
)

// PathManager handles cross-platform path resolution for DeepRetrieve state.
type PathManager struct {
	homeDir string
	baseDir string
}

// NewPathManager creates a path manager rooted at ~/.deepretrieve.
func NewPathManager() *PathManager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir is not available
		homeDir = "."
	}

	return &PathManager{
		homeDir: homeDir,
		baseDir: filepath.Join(homeDir, ".deepretrieve"),
	}
}

// BaseDir returns the DeepRetrieve state directory, creating it if needed.
func (pm *PathManager) BaseDir() (string, error) {
	if err := os.MkdirAll(pm.baseDir, 0755); err != nil {
		return "", err
	}
	return pm.baseDir, nil
}

// StatePath returns the path of the client-local key/value state file.
func (pm *PathManager) StatePath() (string, error) {
	dir, err := pm.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// ConfigPath returns the path of the main configuration file.
func (pm *PathManager) ConfigPath() (string, error) {
	dir, err := pm.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogPath returns the path of the client log file.
func (pm *PathManager) LogPath() (string, error) {
	dir, err := pm.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "deepretrieve.log"), nil
}
