package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathManager(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	pm := NewPathManager()

	dir, err := pm.BaseDir()
	if err != nil {
		t.Fatalf("base dir: %v", err)
	}
	if dir != filepath.Join(home, ".deepretrieve") {
		t.Errorf("base dir = %s", dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("base dir not created: %v", err)
	}

	state, err := pm.StatePath()
	if err != nil {
		t.Fatalf("state path: %v", err)
	}
	if filepath.Base(state) != "state.json" {
		t.Errorf("state path = %s", state)
	}

	cfg, err := pm.ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if filepath.Base(cfg) != "config.yaml" {
		t.Errorf("config path = %s", cfg)
	}

	logPath, err := pm.LogPath()
	if err != nil {
		t.Fatalf("log path: %v", err)
	}
	if filepath.Base(logPath) != "deepretrieve.log" {
		t.Errorf("log path = %s", logPath)
	}
}
