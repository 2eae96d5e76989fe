package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

type TelemetryConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"db_path,omitempty"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

type Config struct {
	// CatalogPath points at a JSON category table. Empty means the built-in one.
	CatalogPath string `json:"catalog_path,omitempty"`
	// MinCatalogVersion rejects older tables when set.
	MinCatalogVersion string `json:"min_catalog_version,omitempty"`
	// DefaultExpanded lists the sections opened when the panel starts.
	DefaultExpanded []string        `json:"default_expanded,omitempty"`
	WatchCatalog    bool            `json:"watch_catalog"`
	Telemetry       TelemetryConfig `json:"telemetry"`
	Server          ServerConfig    `json:"server"`
}

const defaultServerAddr = "127.0.0.1:8087"

func DefaultConfig() Config {
	return Config{
		WatchCatalog: true,
		Telemetry:    TelemetryConfig{Enabled: false},
		Server:       ServerConfig{Addr: defaultServerAddr},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "facetpanel")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "facetpanel")
}

func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("FACETPANEL_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = defaultServerAddr
	}
	cfg.CatalogPath = expandHome(strings.TrimSpace(cfg.CatalogPath))
	cfg.Telemetry.DBPath = expandHome(strings.TrimSpace(cfg.Telemetry.DBPath))

	return cfg, nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveCatalogPath persists the catalog path into the config file (read-modify-write).
func SaveCatalogPath(catalogPath string) error {
	return SaveCatalogPathTo(ConfigPath(), catalogPath)
}

func SaveCatalogPathTo(path, catalogPath string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.CatalogPath = catalogPath
	return SaveTo(path, cfg)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
