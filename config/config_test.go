package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.URL.Param != "state" {
		t.Errorf("URL.Param = %q, want %q", cfg.URL.Param, "state")
	}
	if cfg.Reentrancy != "queue" {
		t.Errorf("Reentrancy = %q, want %q", cfg.Reentrancy, "queue")
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want %v", cfg.Level(), slog.LevelInfo)
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
palette: ["#111111", "#222222", "#333333"]
features:
  - key: thickness
    name: Cartilage Thickness
    long: Mean thickness
  - shape
parameters:
  leftBiomarker: age
url:
  param: s
  base: https://scans.example.com/population
reentrancy: reject
log_level: debug
queries:
  - name: full
    expr: len(selected) == capacity
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(cfg.Palette) != 3 || cfg.Palette[2] != "#333333" {
		t.Errorf("Palette = %v, want three slots", cfg.Palette)
	}
	if len(cfg.Features) != 2 {
		t.Fatalf("len(Features) = %d, want 2", len(cfg.Features))
	}
	if cfg.Features[0].Name != "Cartilage Thickness" {
		t.Errorf("Features[0].Name = %q, want %q", cfg.Features[0].Name, "Cartilage Thickness")
	}
	if cfg.Features[1].Key != "shape" || cfg.Features[1].Name != "" {
		t.Errorf("Features[1] = %+v, want shorthand key only", cfg.Features[1])
	}
	if cfg.Parameters["leftBiomarker"] != "age" {
		t.Errorf("Parameters[leftBiomarker] = %q, want %q", cfg.Parameters["leftBiomarker"], "age")
	}
	if cfg.URL.Param != "s" {
		t.Errorf("URL.Param = %q, want %q", cfg.URL.Param, "s")
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want %v", cfg.Level(), slog.LevelDebug)
	}
}

func TestParse_EnvVars(t *testing.T) {
	t.Setenv("SCANBOARD_COLOUR", "#abcdef")
	t.Setenv("SCANBOARD_HOST", "scans.example.com")

	yaml := `
palette: ["${SCANBOARD_COLOUR}", "#000000"]
parameters:
  leftBiomarker: ${SCANBOARD_UNSET:-weight}
url:
  base: https://${SCANBOARD_HOST}/population
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Palette[0] != "#abcdef" {
		t.Errorf("Palette[0] = %q, want %q", cfg.Palette[0], "#abcdef")
	}
	if cfg.Parameters["leftBiomarker"] != "weight" {
		t.Errorf("Parameters[leftBiomarker] = %q, want %q", cfg.Parameters["leftBiomarker"], "weight")
	}
	if cfg.URL.Base != "https://scans.example.com/population" {
		t.Errorf("URL.Base = %q, want expanded host", cfg.URL.Base)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"duplicate slot", `palette: ["#1", "#1"]`, "duplicate slot"},
		{"empty slot", `palette: [""]`, "slot cannot be empty"},
		{"unset env var", `palette: ["${SCANBOARD_DEFINITELY_UNSET}"]`, "is not set"},
		{"feature without key", "features:\n  - name: Nameless", "key is required"},
		{"duplicate feature", "features: [shape, shape]", "duplicate key"},
		{"feature list", "features:\n  - [a, b]", "feature must be a string or object"},
		{"bad base scheme", "url:\n  base: ftp://example.com", "scheme must be http or https"},
		{"param needs escaping", "url:\n  param: a b", "must not need escaping"},
		{"bad reentrancy", "reentrancy: retry", "unknown reentrancy policy"},
		{"bad log level", "log_level: loud", "log_level"},
		{"query without name", "queries:\n  - expr: len(selected)", "name is required"},
		{"duplicate query", "queries:\n  - {name: a, expr: '1'}\n  - {name: a, expr: '2'}", "duplicate name"},
		{"bad query", "queries:\n  - {name: a, expr: 'len('}", "queries[0] (a)"},
		{"invalid yaml", "palette: [", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanboard.yaml")
	if err := os.WriteFile(path, []byte("reentrancy: reject\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Reentrancy != "reject" {
		t.Errorf("Reentrancy = %q, want %q", cfg.Reentrancy, "reject")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}
