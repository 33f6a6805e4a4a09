// Package config resolves the meals configuration from defaults, JSONC config
// files, environment variables and command-line overrides.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
	"go.uber.org/zap/zapcore"
)

// Errors returned by [Load].
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrEnvFileInvalid     = errors.New("invalid .env file")
	ErrCatalogPathEmpty   = errors.New("catalog path cannot be empty")
	ErrFavoritesPathEmpty = errors.New("favorites path cannot be empty")
	ErrLogLevelInvalid    = errors.New("invalid log level")
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Catalog   string `json:"catalog"`
	Favorites string `json:"favorites"`
	LogLevel  string `json:"log_level,omitempty"`
	LogFile   string `json:"log_file,omitempty"`

	// Resolved values (computed, not serialized). EffectiveCwd comes from
	// the -C flag or os.Getwd; LogFileAbs is empty when logging to stderr.
	EffectiveCwd string        `json:"-"`
	CatalogAbs   string        `json:"-"`
	FavoritesAbs string        `json:"-"`
	LogFileAbs   string        `json:"-"`
	Level        zapcore.Level `json:"-"`
	Sources      Sources       `json:"-"`
}

// Sources tracks where configuration values came from (for print-config).
type Sources struct {
	Global  string   // Path to global config if loaded, empty otherwise
	Project string   // Path to project or explicit config if loaded, empty otherwise
	EnvFile string   // Path to .env if loaded, empty otherwise
	Env     []string // Environment variables that overrode file values
}

// Default values.
const (
	DefaultCatalog   = "data/meals.json"
	DefaultFavorites = "favorites.json"
	DefaultLogLevel  = "warn"
)

// FileName is the project config file name.
const FileName = ".meals.json"

// EnvFileName is the optional dotenv file read from the working directory.
const EnvFileName = ".env"

// Environment variables consulted by [Load].
const (
	EnvCatalog   = "MEALS_CATALOG"
	EnvFavorites = "MEALS_FAVORITES"
	EnvLogLevel  = "MEALS_LOG_LEVEL"
	EnvLogFile   = "MEALS_LOG_FILE"
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		Catalog:   DefaultCatalog,
		Favorites: DefaultFavorites,
		LogLevel:  DefaultLogLevel,
	}
}

// Overrides holds command-line values. A field applies only when its Has
// flag is set, so an explicitly empty flag is distinguishable from an
// absent one.
type Overrides struct {
	Catalog      string
	HasCatalog   bool
	Favorites    string
	HasFavorites bool
	LogLevel     string
	HasLogLevel  bool
}

// LoadInput holds the inputs for [Load].
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Overrides         // CLI flag values
	Env             map[string]string // process environment
}

// Load resolves configuration with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/meals/config.json or ~/.config/meals/config.json)
//  3. Project config file (.meals.json, if it exists) or the explicit configPath
//  4. Environment (MEALS_*), with .env in the working directory filling gaps
//  5. CLI overrides
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	} else if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := Default()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	env, envFile, err := environment(workDir, input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.EnvFile = envFile
	cfg = applyEnv(cfg, env)

	cfg = applyOverrides(cfg, input.Overrides)

	validateErr := validate(&cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir
	cfg.CatalogAbs = resolve(workDir, cfg.Catalog)
	cfg.FavoritesAbs = resolve(workDir, cfg.Favorites)

	if cfg.LogFile != "" {
		cfg.LogFileAbs = resolve(workDir, cfg.LogFile)
	}

	return cfg, nil
}

// Format renders the serializable part of cfg as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot format config: %w", err)
	}

	return string(data), nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// globalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/meals/config.json if set, otherwise ~/.config/meals/config.json.
// Returns empty string if home directory cannot be determined.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "meals", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "meals", "config.json")
	}

	return ""
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	path := globalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProjectConfig loads .meals.json from workDir, or configPath when set.
// An explicit configPath must exist.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	path := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		path = resolve(workDir, configPath)
		mustExist = true

		if _, statErr := os.Stat(path); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile loads a config file. If mustExist is false, a missing file returns
// a zero config and loaded=false.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// A path set to "" in a file is a mistake, not a request for the default.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if isExplicitEmpty(raw, "catalog") {
		return Config{}, ErrCatalogPathEmpty
	}

	if isExplicitEmpty(raw, "favorites") {
		return Config{}, ErrFavoritesPathEmpty
	}

	return cfg, nil
}

func isExplicitEmpty(raw map[string]any, key string) bool {
	val, exists := raw[key]
	if !exists {
		return false
	}

	str, ok := val.(string)

	return ok && str == ""
}

// environment returns the process environment with variables from the .env
// file in workDir added where the process does not set them.
func environment(workDir string, processEnv map[string]string) (map[string]string, string, error) {
	path := filepath.Join(workDir, EnvFileName)

	fileEnv, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return processEnv, "", nil
		}

		return nil, "", fmt.Errorf("%w %s: %w", ErrEnvFileInvalid, path, err)
	}

	merged := make(map[string]string, len(processEnv)+len(fileEnv))
	for k, v := range fileEnv {
		merged[k] = v
	}

	for k, v := range processEnv {
		merged[k] = v
	}

	return merged, path, nil
}

func applyEnv(cfg Config, env map[string]string) Config {
	for _, v := range []struct {
		key   string
		field *string
	}{
		{EnvCatalog, &cfg.Catalog},
		{EnvFavorites, &cfg.Favorites},
		{EnvLogLevel, &cfg.LogLevel},
		{EnvLogFile, &cfg.LogFile},
	} {
		if val, ok := env[v.key]; ok && val != "" {
			*v.field = val
			cfg.Sources.Env = append(cfg.Sources.Env, v.key)
		}
	}

	return cfg
}

func applyOverrides(cfg Config, o Overrides) Config {
	if o.HasCatalog {
		cfg.Catalog = o.Catalog
	}

	if o.HasFavorites {
		cfg.Favorites = o.Favorites
	}

	if o.HasLogLevel {
		cfg.LogLevel = o.LogLevel
	}

	return cfg
}

func merge(base, overlay Config) Config {
	if overlay.Catalog != "" {
		base.Catalog = overlay.Catalog
	}

	if overlay.Favorites != "" {
		base.Favorites = overlay.Favorites
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.LogFile != "" {
		base.LogFile = overlay.LogFile
	}

	return base
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Catalog) == "" {
		return ErrCatalogPathEmpty
	}

	if strings.TrimSpace(cfg.Favorites) == "" {
		return ErrFavoritesPathEmpty
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrLogLevelInvalid, cfg.LogLevel)
	}

	cfg.Level = level

	return nil
}
