// Package config resolves the package-directory location and loads the
// optional dnflock config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvDir is the environment variable that overrides the package
// directory location.
const EnvDir = "DNFLOCK_DIR"

// Config holds the optional settings read from the YAML config file.
type Config struct {
	// PackageDir overrides the package directory location.
	PackageDir string `yaml:"package_dir"`
	// Exclude lists package names ignored during classification.
	Exclude []string `yaml:"exclude"`
	// Categories maps category names to anchored regexp patterns,
	// replacing the built-in category set when non-empty.
	Categories map[string]string `yaml:"categories"`
	// QueryTimeoutSeconds bounds each dnf/rpm invocation.
	QueryTimeoutSeconds int `yaml:"query_timeout_seconds"`
}

// Dir returns the dnflock config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/dnflock if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dnflock"), nil
}

// Load reads {dir}/config.yaml. A missing file returns an empty config
// without an error; a malformed file is an error.
func Load(dir string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ResolvePackageDir resolves the package directory, in precedence order:
// the explicit flag value, the DNFLOCK_DIR environment variable (a .env
// file in the working directory is loaded first, without overriding the
// real environment), the config file's package_dir, and finally the
// ~/fedora-packages fallback.
func ResolvePackageDir(flagValue string, cfg *Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	// Best effort: a missing .env file is the normal case.
	_ = godotenv.Load()

	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}

	if cfg != nil && cfg.PackageDir != "" {
		return cfg.PackageDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "fedora-packages"), nil
}
