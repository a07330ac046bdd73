package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteConfig(t *testing.T) {
	cfg := DefaultConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	if err := Write(path, cfg); err != nil {
		t.Fatalf("write config: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v", info.Mode().Perm())
	}
	loaded, found, err := Load(path)
	if err != nil || !found {
		t.Fatalf("load written config: found=%t err=%v", found, err)
	}
	if loaded.Render.CharWidth != cfg.Render.CharWidth {
		t.Fatalf("char_width = %d", loaded.Render.CharWidth)
	}
}

func TestWriteRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redaction.Marker = ""
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Write(path, cfg); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("invalid config should not be written")
	}
}
