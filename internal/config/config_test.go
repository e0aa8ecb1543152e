package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("address = %q, want default", cfg.Server.Address)
	}
	if cfg.Server.PollInterval != DefaultPollInterval {
		t.Errorf("pollInterval = %v, want default", cfg.Server.PollInterval)
	}
}

func TestLoadFromFull(t *testing.T) {
	path := write(t, `
server:
  address: ":9000"
  pollInterval: 10s
thumbs:
  bucket: my-covers
  prefix: thumbs/
metrics:
  namespace: arcade
seed:
  - title: Doom
    thumbKey: doom.png
  - title: Quake
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Address != ":9000" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Server.PollInterval != 10*time.Second {
		t.Errorf("pollInterval = %v", cfg.Server.PollInterval)
	}
	if cfg.Thumbs.Bucket != "my-covers" || cfg.Thumbs.Prefix != "thumbs/" {
		t.Errorf("thumbs = %+v", cfg.Thumbs)
	}
	if cfg.Metrics.Namespace != "arcade" {
		t.Errorf("namespace = %q", cfg.Metrics.Namespace)
	}
	if len(cfg.Seed) != 2 || cfg.Seed[0].ThumbKey != "doom.png" {
		t.Errorf("seed = %+v", cfg.Seed)
	}
}

func TestLoadFromPartialKeepsDefaults(t *testing.T) {
	path := write(t, "thumbs:\n  bucket: covers\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("address = %q, want default", cfg.Server.Address)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := write(t, "server: [not a map")
	if _, err := LoadFrom(path); err == nil {
		t.Errorf("invalid YAML did not error")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "poll interval too small",
			content: "server:\n  pollInterval: 100ms\n",
			wantErr: "S103",
		},
		{
			name:    "prefix without bucket",
			content: "thumbs:\n  prefix: thumbs/\n",
			wantErr: "S104",
		},
		{
			name:    "seed without title",
			content: "seed:\n  - thumbKey: x.png\n",
			wantErr: "S105",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(write(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
