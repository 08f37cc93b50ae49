package config

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pterm/pterm"
)

func TestMain(m *testing.M) {
	// replace spotter directory to avoid overriding configuration
	configDir = "spotter_test"

	InitializePaths()

	pterm.DisableOutput()

	code := m.Run()

	err := os.RemoveAll(filepath.Dir(configFilePath))
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(code)
}

func TestDefaultConfigIsWrittenAndLoaded(t *testing.T) {
	cfg, err := New(WithViperConfig(ConfigFilePath()))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(ConfigFilePath()); err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}

	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected default base URL: %s", cfg.Server.BaseURL)
	}

	if cfg.Server.StreamTimeout != 60*time.Second {
		t.Errorf("unexpected stream timeout: %s", cfg.Server.StreamTimeout)
	}

	if cfg.Timers.RestSeconds != 90 {
		t.Errorf("unexpected default rest seconds: %d", cfg.Timers.RestSeconds)
	}

	if cfg.Timers.RestAdjustSeconds != 15 {
		t.Errorf("unexpected rest adjust seconds: %d", cfg.Timers.RestAdjustSeconds)
	}

	if !cfg.Notify.Enabled {
		t.Error("notifications should default to enabled")
	}
}
