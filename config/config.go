// Package config provides configuration management for wallsearch.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dixieflatline76/wallsearch/pkg/provider"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration data. The launcher host normally supplies
// min_resolution and results_limit; the rest are local defaults.
type Config struct {
	MinResolution    string   `yaml:"min_resolution"`    // "auto", "none" or WxH
	ResultsLimit     int      `yaml:"results_limit"`     // cap on rendered results
	CacheDir         string   `yaml:"cache_dir"`         // thumbnail cache directory
	WallpaperDir     string   `yaml:"wallpaper_dir"`     // destination for applied wallpapers
	WallpaperCommand []string `yaml:"wallpaper_command"` // command + fixed args, image path appended
	MonitorCommand   []string `yaml:"monitor_command"`   // command + args emitting monitor JSON
	ServerAddr       string   `yaml:"server_addr"`       // launcher bridge listen address
	ThumbnailWorkers int      `yaml:"thumbnail_workers"` // parallel thumbnail downloads
	UserAgent        string   `yaml:"user_agent"`
	Icon             string   `yaml:"icon"` // icon for placeholder items

	path string
}

// GetPath returns the path to the user's config directory.
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, LogSubDir), nil
}

// GetFilename returns the path to the user's config file.
func GetFilename() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Default returns a Config populated with default values.
func Default() *Config {
	c := &Config{}
	c.setDefaultValues()
	return c
}

// setDefaultValues sets default values for the configuration
func (c *Config) setDefaultValues() {
	c.MinResolution = DefaultMinResolution
	c.ResultsLimit = DefaultResultsLimit
	c.ServerAddr = DefaultServerAddr
	c.ThumbnailWorkers = DefaultThumbnailWorkers
	c.WallpaperCommand = append([]string(nil), DefaultWallpaperCommand...)
	c.MonitorCommand = append([]string(nil), DefaultMonitorCommand...)
	c.UserAgent = AppName + "/" + AppVersion
	c.Icon = DefaultIcon

	if cacheDir, err := os.UserCacheDir(); err == nil {
		c.CacheDir = filepath.Join(cacheDir, strings.ToLower(AppName), "thumbnails")
	} else {
		c.CacheDir = filepath.Join(os.TempDir(), strings.ToLower(AppName), "thumbnails")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		c.WallpaperDir = filepath.Join(homeDir, "Pictures")
	} else {
		c.WallpaperDir = filepath.Join(os.TempDir(), strings.ToLower(AppName), "wallpapers")
	}
}

// Load builds a Config from defaults, the YAML file at path, .env files and
// WALLSEARCH_* environment variables, in that order. An empty path selects
// the default file. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetFilename()
		if err != nil {
			return nil, err
		}
		path = p
	}

	c := Default()
	c.path = path

	if err := c.loadFromFile(path); err != nil {
		return nil, err
	}

	LoadDotEnv(filepath.Dir(path))
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// loadFromFile merges the YAML document at filename over the current values.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	return nil
}

// LoadDotEnv loads .env files with priority: <dir>/.env > ./.env.
// godotenv.Load does NOT overwrite already-set env vars, so OS env vars
// always win. Returns list of files actually loaded.
func LoadDotEnv(dir string) []string {
	candidates := []string{filepath.Join(dir, ".env"), ".env"}
	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// applyEnv overrides values from WALLSEARCH_* environment variables.
func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("MIN_RESOLUTION"); ok {
		c.MinResolution = v
	}
	if v, ok := lookupEnv("RESULTS_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sRESULTS_LIMIT %q: %w", EnvPrefix, v, err)
		}
		c.ResultsLimit = n
	}
	if v, ok := lookupEnv("THUMBNAIL_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sTHUMBNAIL_WORKERS %q: %w", EnvPrefix, v, err)
		}
		c.ThumbnailWorkers = n
	}
	if v, ok := lookupEnv("CACHE_DIR"); ok {
		c.CacheDir = v
	}
	if v, ok := lookupEnv("WALLPAPER_DIR"); ok {
		c.WallpaperDir = v
	}
	if v, ok := lookupEnv("WALLPAPER_COMMAND"); ok {
		c.WallpaperCommand = strings.Fields(v)
	}
	if v, ok := lookupEnv("MONITOR_COMMAND"); ok {
		c.MonitorCommand = strings.Fields(v)
	}
	if v, ok := lookupEnv("SERVER_ADDR"); ok {
		c.ServerAddr = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.ResultsLimit <= 0 {
		return fmt.Errorf("results_limit must be positive, got %d", c.ResultsLimit)
	}
	if c.ThumbnailWorkers <= 0 {
		return fmt.Errorf("thumbnail_workers must be positive, got %d", c.ThumbnailWorkers)
	}
	switch c.MinResolution {
	case provider.ResolutionAuto, provider.ResolutionNone:
	default:
		if _, err := provider.ParseResolution(c.MinResolution); err != nil {
			return fmt.Errorf("invalid min_resolution: %w", err)
		}
	}
	if len(c.WallpaperCommand) == 0 {
		return errors.New("wallpaper_command must not be empty")
	}
	if len(c.MonitorCommand) == 0 {
		return errors.New("monitor_command must not be empty")
	}
	if c.CacheDir == "" || c.WallpaperDir == "" {
		return errors.New("cache_dir and wallpaper_dir must be set")
	}
	return nil
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		p, err := GetFilename()
		if err != nil {
			return err
		}
		c.path = p
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding config data: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
