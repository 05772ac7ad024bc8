package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() on missing file failed: %v", err)
	}
	if cfg.PackageDir != "" || len(cfg.Exclude) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	content := `package_dir: /srv/packages
exclude:
  - kernel-debug
  - testpkg
categories:
  shells: "^(bash|zsh|fish)"
query_timeout_seconds: 30
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.PackageDir != "/srv/packages" {
		t.Errorf("PackageDir = %q", cfg.PackageDir)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "kernel-debug" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if cfg.Categories["shells"] != "^(bash|zsh|fish)" {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if cfg.QueryTimeoutSeconds != 30 {
		t.Errorf("QueryTimeoutSeconds = %d", cfg.QueryTimeoutSeconds)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestResolvePackageDir_Precedence(t *testing.T) {
	// Flag value wins over everything.
	got, err := ResolvePackageDir("/flag/dir", &Config{PackageDir: "/cfg/dir"})
	if err != nil {
		t.Fatalf("ResolvePackageDir() failed: %v", err)
	}
	if got != "/flag/dir" {
		t.Errorf("resolved %q, want /flag/dir", got)
	}

	// Environment variable beats the config file.
	t.Setenv(EnvDir, "/env/dir")
	got, err = ResolvePackageDir("", &Config{PackageDir: "/cfg/dir"})
	if err != nil {
		t.Fatalf("ResolvePackageDir() failed: %v", err)
	}
	if got != "/env/dir" {
		t.Errorf("resolved %q, want /env/dir", got)
	}

	// Config file beats the fallback.
	t.Setenv(EnvDir, "")
	got, err = ResolvePackageDir("", &Config{PackageDir: "/cfg/dir"})
	if err != nil {
		t.Fatalf("ResolvePackageDir() failed: %v", err)
	}
	if got != "/cfg/dir" {
		t.Errorf("resolved %q, want /cfg/dir", got)
	}
}

func TestResolvePackageDir_Fallback(t *testing.T) {
	t.Setenv(EnvDir, "")
	got, err := ResolvePackageDir("", &Config{})
	if err != nil {
		t.Fatalf("ResolvePackageDir() failed: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, "fedora-packages")
	if got != want {
		t.Errorf("resolved %q, want %q", got, want)
	}
}
