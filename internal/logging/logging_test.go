package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInitializeWritesRotatedFile(t *testing.T) {
	t.Cleanup(InitializeDefault)

	path := filepath.Join(t.TempDir(), "billing.log")
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Level = "debug"
	cfg.Output = path

	if err := Initialize(cfg); err != nil {
		t.Fatal(err)
	}
	Named("engine").Debug("bill computed", zap.String("flag", "verde"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	for _, want := range []string{`"logger":"engine"`, `"msg":"bill computed"`, `"flag":"verde"`, `"timestamp"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestInitializeFiltersByLevel(t *testing.T) {
	t.Cleanup(InitializeDefault)

	path := filepath.Join(t.TempDir(), "billing.log")
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Level = "warn"
	cfg.Output = path

	if err := Initialize(cfg); err != nil {
		t.Fatal(err)
	}
	Info("dropped")
	Warn("kept")
	Error("failed")
	Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") || !strings.Contains(string(data), "failed") {
		t.Errorf("unexpected log contents: %s", data)
	}
}
