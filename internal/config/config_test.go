package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9300"
include_body = true

[capture]
fcs_present = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9300" || !cfg.Server.IncludeBody {
		t.Fatalf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Server.Name != "dot11d" || cfg.Server.MaxBodyBytes != 64*1024 {
		t.Fatalf("server defaults lost: %+v", cfg.Server)
	}
	if cfg.Capture.FCSPresent {
		t.Fatalf("explicit false must override default true")
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 9\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []string{
		"[server]\naddr = \" \"\n",
		"[server]\nmax_body_bytes = 0\n",
		"[log]\nlevel = \"loud\"\n",
		"[capture]\nmax_frame_bytes = -1\n",
	}
	for _, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("expected validation error for %q", content)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestTemplateRoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	want := DefaultConfig()
	if cfg.Server.Addr != want.Server.Addr || cfg.Capture.MaxFrameBytes != want.Capture.MaxFrameBytes {
		t.Fatalf("template did not reproduce defaults: %+v", cfg)
	}
}
