package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values used by New when no configuration file is present.
const (
	DefaultCatalogURL      = "http://localhost:8080/api/catalog"
	DefaultCatalogVersion  = "1.0"
	DefaultApprovalURL     = "http://localhost:8080/api/approval"
	DefaultApprovalVersion = "1.2"
	DefaultInventoryURL    = "http://localhost:8080/api/topological-inventory"
	DefaultInventoryVer    = "1.0"
	DefaultTimeoutSeconds  = 30
	DefaultLimit           = 50
	DefaultDebounceMillis  = 1000
	DefaultNotifySeconds   = 5
	DefaultOutputFormat    = "table"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"

	configDirName  = ".catalogctl"
	configFileName = "config.yaml"
)

// Environment variables that override file configuration.
const (
	EnvHome         = "CATALOGCTL_HOME"
	EnvCatalogURL   = "CATALOGCTL_CATALOG_URL"
	EnvApprovalURL  = "CATALOGCTL_APPROVAL_URL"
	EnvInventoryURL = "CATALOGCTL_INVENTORY_URL"
	EnvToken        = "CATALOGCTL_TOKEN"
	EnvLogLevel     = "CATALOGCTL_LOG_LEVEL"
	EnvLogFormat    = "CATALOGCTL_LOG_FORMAT"
	EnvTimeout      = "CATALOGCTL_TIMEOUT_SECONDS"
)

// ErrUnknownKey is returned by Get and Set for keys outside the config schema.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the catalogctl configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Pagination PaginationConfig `yaml:"pagination"`
	Console    ConsoleConfig    `yaml:"console"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`

	configPath string
}

// APIConfig holds the REST services catalogctl talks to.
type APIConfig struct {
	Catalog        ServiceConfig `yaml:"catalog"`
	Approval       ServiceConfig `yaml:"approval"`
	Inventory      ServiceConfig `yaml:"inventory"`
	Token          string        `yaml:"token,omitempty"`
	TimeoutSeconds int           `yaml:"timeout_seconds" validate:"min=1,max=600"`
}

// ServiceConfig locates one REST service. The version is appended to URL as "/vMAJOR.MINOR".
type ServiceConfig struct {
	URL     string `yaml:"url"     validate:"required,url"`
	Version string `yaml:"version" validate:"required,apiversion"`
}

// PaginationConfig controls list requests.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" validate:"min=1,max=1000"`
}

// ConsoleConfig controls the interactive console.
type ConsoleConfig struct {
	DebounceMillis      int `yaml:"debounce_ms"          validate:"min=0,max=10000"`
	NotificationSeconds int `yaml:"notification_seconds" validate:"min=1,max=300"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" validate:"oneof=table json ndjson"`
}

// New returns a Config populated with defaults, the global configuration file
// (if any) and environment overrides, in that order of precedence.
func New() *Config {
	cfg := Default()

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		// A missing or unreadable file leaves defaults in place.
		_ = cfg.Load()
	}

	cfg.applyEnv()
	return cfg
}

// Default returns a Config holding only built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Catalog:        ServiceConfig{URL: DefaultCatalogURL, Version: DefaultCatalogVersion},
			Approval:       ServiceConfig{URL: DefaultApprovalURL, Version: DefaultApprovalVersion},
			Inventory:      ServiceConfig{URL: DefaultInventoryURL, Version: DefaultInventoryVer},
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Pagination: PaginationConfig{DefaultLimit: DefaultLimit},
		Console: ConsoleConfig{
			DebounceMillis:      DefaultDebounceMillis,
			NotificationSeconds: DefaultNotifySeconds,
		},
		Output:  OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// ConfigPath returns the file this config loads from and saves to.
//
//nolint:revive // ConfigPath reads better than Path at call sites.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the config file over the current values.
func (c *Config) Load() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the config to its file, creating the directory when needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCatalogURL); v != "" {
		c.API.Catalog.URL = v
	}
	if v := os.Getenv(EnvApprovalURL); v != "" {
		c.API.Approval.URL = v
	}
	if v := os.Getenv(EnvInventoryURL); v != "" {
		c.API.Inventory.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// Get returns the value at a dotted key such as "api.catalog.url".
func (c *Config) Get(key string) (interface{}, error) {
	tree, err := c.toMap()
	if err != nil {
		return nil, err
	}

	var node interface{} = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		node, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	return node, nil
}

// Set assigns value to a dotted leaf key. The value is parsed as YAML so
// "30" becomes a number and "true" a boolean.
func (c *Config) Set(key, value string) error {
	tree, err := c.toMap()
	if err != nil {
		return err
	}

	parts := strings.Split(key, ".")
	node := tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		node = next
	}

	leaf := parts[len(parts)-1]
	current, ok := node[leaf]
	if !ok {
		if key != "api.token" {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	if _, isSection := current.(map[string]interface{}); isSection {
		return fmt.Errorf("%s is a section, set one of its keys instead", key)
	}

	var parsed interface{}
	if err = yaml.Unmarshal([]byte(value), &parsed); err != nil || parsed == nil {
		parsed = value
	}
	if _, wantString := current.(string); wantString || key == "api.token" {
		parsed = value
	}
	node[leaf] = parsed

	data, err := yaml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	updated := *c
	if err = yaml.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*c = updated
	return nil
}

// List returns every leaf key with its value, keyed by dotted path.
func (c *Config) List() (map[string]interface{}, error) {
	tree, err := c.toMap()
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{})
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]interface{}) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]interface{}); ok {
			flatten(key, child, out)
			continue
		}
		out[key] = v
	}
}

func (c *Config) toMap() (map[string]interface{}, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	var tree map[string]interface{}
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("re-reading config: %w", err)
	}
	return tree, nil
}

// GetConfigDir returns the catalogctl configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}
