package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/hpungsan/autotag/internal/schema"
	"github.com/hpungsan/autotag/internal/tagging"
)

// EnvBlacklist is the environment variable carrying a process-wide
// blacklist, comma- or whitespace-separated. Merged with the config-file
// list at load time; read once, read-only afterwards.
const EnvBlacklist = "AUTOTAG_BLACKLIST"

// Config holds application configuration, including the record type
// declarations the tagging engine compiles from.
type Config struct {
	// DateFormat is the time layout date fields are rendered with during
	// extraction. Defaults to full weekday, full month, year.
	DateFormat string `json:"date_format,omitempty"`

	// Blacklist is the global word list excluded from derived tags,
	// merged from this file and the AUTOTAG_BLACKLIST environment value.
	Blacklist schema.StringList `json:"blacklist,omitempty"`

	// Types declares the record types and their taggable fields.
	Types map[string]*schema.TypeDef `json:"types,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DateFormat: tagging.DefaultDateFormat,
	}
}

// Load loads configuration from baseDir/config.json and overlays the
// environment blacklist. Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.autotag.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	cfg.Blacklist = mergeStringSlice(cfg.Blacklist, schema.StringList(envBlacklist()))
	return cfg, nil
}

// envBlacklist reads and splits the AUTOTAG_BLACKLIST environment value.
func envBlacklist() []string {
	v := os.Getenv(EnvBlacklist)
	if v == "" {
		return nil
	}
	return tagging.SplitWords(v)
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for scalars; word lists are merged and deduplicated; type declarations
// are taken per-name, overlay winning.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DateFormat = overlay.DateFormat
	if result.DateFormat == "" {
		result.DateFormat = base.DateFormat
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.Blacklist = mergeStringSlice(base.Blacklist, overlay.Blacklist)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	if len(base.Types) > 0 || len(overlay.Types) > 0 {
		result.Types = make(map[string]*schema.TypeDef, len(base.Types)+len(overlay.Types))
		for name, def := range base.Types {
			result.Types[name] = def
		}
		for name, def := range overlay.Types {
			result.Types[name] = def
		}
	}

	return result
}

// NewEngine compiles the tagging engine from the loaded configuration.
func (c *Config) NewEngine() (*tagging.Engine, error) {
	return tagging.NewEngine(c.Types, tagging.Options{
		DateFormat: c.DateFormat,
		Blacklist:  c.Blacklist,
	})
}

// mergeStringSlice combines two slices, trims empties, and removes duplicates.
func mergeStringSlice[S ~[]string](a, b S) S {
	seen := make(map[string]bool)
	result := make(S, 0, len(a)+len(b))

	for _, s := range a {
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
