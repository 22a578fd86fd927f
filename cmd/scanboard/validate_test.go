package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunValidate_ValidConfig(t *testing.T) {
	configPath := writeFile(t, "config.yaml", `
palette: ["#E69F00", "#93CEF1", "#009E73"]
features:
  - thickness
  - key: shape
    name: Bone Shape
url:
  param: s
  base: https://scans.example.com/analysis
queries:
  - name: full
    expr: len(selected) == capacity
`)

	output, _, err := executeCmd(t, "validate", "-c", configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	expectedPhrases := []string{
		"Config is valid!",
		"Capacity:   3 slots",
		"Features:   2 (default thickness)",
		"URL param:  s",
		"Reentrancy: queue",
		"Queries:    1",
	}
	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_DefaultsOnly(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "log_level: warn\n")

	output, _, err := executeCmd(t, "validate", "-c", configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}
	for _, phrase := range []string{"Capacity:   2 slots", "Features:   3 (default thickness)", "URL param:  state"} {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "duplicate palette slot",
			content: `palette: ["#fff", "#fff"]`,
			wantErr: "duplicate",
		},
		{
			name:    "unknown reentrancy",
			content: `reentrancy: sometimes`,
			wantErr: "invalid config",
		},
		{
			name: "query does not compile",
			content: `
queries:
  - name: broken
    expr: "len(selected"
`,
			wantErr: "invalid config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeFile(t, "invalid.yaml", tt.content)

			_, _, err := executeCmd(t, "validate", "-c", configPath)
			if err == nil {
				t.Fatal("validate command should return error for invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, _, err := executeCmd(t, "validate", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("validate command should return error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %v, want read failure", err)
	}
}
