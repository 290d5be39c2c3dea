package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.toml")
	cfg, path, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("file %q should not exist", path)
	}
	if cfg.FFprobeBinary() != "ffprobe" || cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("unexpected defaults: %+v", cfg.Tools)
	}
	if cfg.ProbeCache.Enabled {
		t.Fatalf("probe cache should default to disabled")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected default level: %q", cfg.Logging.Level)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[tools]
ffprobe = "  /opt/ffmpeg/bin/ffprobe "
ffmpeg = "ffmpeg"

[probe_cache]
enabled = true
path = "` + filepath.Join(dir, "cache", "probe.db") + `"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatalf("expected config file to be found")
	}
	if cfg.FFprobeBinary() != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("ffprobe not trimmed: %q", cfg.FFprobeBinary())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not lowercased: %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.ProbeCache.Path) {
		t.Fatalf("cache path not absolute: %q", cfg.ProbeCache.Path)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"verbose\"\n", "logging.level"},
		{"empty ffmpeg", "[tools]\nffmpeg = \" \"\n", "tools.ffmpeg"},
		{"cache without path", "[probe_cache]\nenabled = true\npath = \"\"\n", "probe_cache.path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Load error = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatalf("sample config not found after CreateSample")
	}
	if cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("unexpected sample ffmpeg: %q", cfg.FFmpegBinary())
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("ExpandPath = %q", got)
	}
}
