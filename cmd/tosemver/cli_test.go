package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/tosemver/internal/config"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestRunCLI_SourcesWrite(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("CI", "true")

	if err := os.WriteFile("VERSION", []byte("2.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := "sources:\n  - path: VERSION\n"
	if err := os.WriteFile(config.DefaultConfigFile, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := runCLI([]string{"tosemver", "--no-color", "sources", "--write"}); err != nil {
		t.Fatalf("runCLI: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "VERSION"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "2.1.0\n" {
		t.Errorf("VERSION = %q, want %q", data, "2.1.0\n")
	}
}

func TestRunCLI_InitThenDoctor(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	t.Setenv(config.EnvConfigPath, "")

	if err := os.WriteFile("package.json", []byte(`{"name":"demo","version":"1.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI([]string{"tosemver", "--no-color", "init"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(config.DefaultConfigFile); err != nil {
		t.Fatalf("config not created: %v", err)
	}
	if err := runCLI([]string{"tosemver", "--no-color", "doctor"}); err != nil {
		t.Fatalf("doctor: %v", err)
	}
}

func TestRunCLI_ConfigTraversalRejected(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "../../etc/passwd")

	err := runCLI([]string{"tosemver", "convert", "1"})
	if err == nil || !strings.Contains(err.Error(), "path traversal") {
		t.Fatalf("expected traversal error, got %v", err)
	}
}

func TestRunCLI_InitForceReplacesBrokenConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", "sources: [\n"},
		{"unknown key", "bogus: 1\n"},
		{"bad rule", "rules: [{type: nope}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			chdir(t, tmp)
			t.Setenv(config.EnvConfigPath, "")

			if err := os.WriteFile(config.DefaultConfigFile, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile("VERSION", []byte("1.0\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			if err := runCLI([]string{"tosemver", "--no-color", "init", "--force"}); err != nil {
				t.Fatalf("init --force: %v", err)
			}

			data, err := os.ReadFile(config.DefaultConfigFile)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(data), "# tosemver configuration file") {
				t.Errorf("config was not rewritten:\n%s", data)
			}
			cfg, err := config.LoadConfigFn(config.DefaultConfigFile)
			if err != nil {
				t.Fatalf("rewritten config does not load: %v", err)
			}
			if len(cfg.Sources) != 1 || cfg.Sources[0].Path != "VERSION" {
				t.Errorf("sources = %+v", cfg.Sources)
			}
		})
	}
}
