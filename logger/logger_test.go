package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/backrooms/config"
)

// TestInitFile verifies entries reach the configured file in JSON format
func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "backrooms.log")
	closer, err := Init(config.LogConfig{Level: "debug", Format: "json", File: path})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Log.WithField("wall", "0,0-400,0").Debug("wall destroyed")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	Log.SetOutput(os.Stderr)
	defer Init(config.LogConfig{Level: "info"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"wall destroyed"`) {
		t.Errorf("Expected JSON entry in log file, got %q", string(data))
	}
}

// TestInitRejectsBadLevel verifies level parsing errors surface
func TestInitRejectsBadLevel(t *testing.T) {
	if _, err := Init(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("Expected error for unknown level")
	}
}
