package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	content := `offset = "+0900"
precision = "millisecond"

[ui]
accent = "39"
code_theme = "monokai"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Offset != "+0900" {
		t.Errorf("Offset = %q, want +0900", cfg.Offset)
	}
	if cfg.Precision != "millisecond" {
		t.Errorf("Precision = %q, want millisecond", cfg.Precision)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("UI.Accent = %q, want 39", cfg.UI.Accent)
	}
	if cfg.UI.CodeTheme != "monokai" {
		t.Errorf("UI.CodeTheme = %q, want monokai", cfg.UI.CodeTheme)
	}
}

func TestLoadFromRejectsBadToml(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("offset = [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom accepted malformed toml")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvOffset, " +0900 ")
	t.Setenv(EnvPrecision, "ms")

	cfg := FromEnv()
	if cfg.Offset != "+0900" {
		t.Errorf("Offset = %q, want trimmed +0900", cfg.Offset)
	}
	if cfg.Precision != "ms" {
		t.Errorf("Precision = %q, want ms", cfg.Precision)
	}
}

func TestFromEnvEmpty(t *testing.T) {
	t.Setenv(EnvOffset, "")
	t.Setenv(EnvPrecision, "")

	cfg := FromEnv()
	if cfg.Offset != "" || cfg.Precision != "" {
		t.Errorf("FromEnv = %+v, want empty", cfg)
	}
}

func TestCreateDefaultAt(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "config.toml")

	created, err := CreateDefaultAt(path)
	if err != nil {
		t.Fatalf("CreateDefaultAt returned error: %v", err)
	}
	if created != path {
		t.Errorf("path = %q, want %q", created, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	text := string(data)
	for _, want := range []string{"# offset =", "# precision =", "# [ui]"} {
		if !strings.Contains(text, want) {
			t.Errorf("template missing %q", want)
		}
	}

	// Every setting ships commented out, so loading it yields defaults.
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Offset != "" || cfg.Precision != "" {
		t.Errorf("template config not empty: %+v", cfg)
	}
}

func TestCreateDefaultAtKeepsExisting(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte(`offset = "+0200"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := CreateDefaultAt(path); err != nil {
		t.Fatalf("CreateDefaultAt returned error: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Offset != "+0200" {
		t.Errorf("existing config overwritten, Offset = %q", cfg.Offset)
	}
}
