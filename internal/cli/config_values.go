package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/catalogctl/internal/config"
)

// tokenKey is masked by config get and config list.
const tokenKey = "api.token"

// errProjectToken keeps credentials out of files that are usually committed.
var errProjectToken = errors.New(
	"the API token cannot be stored in a project config; set it outside the project or use CATALOGCTL_TOKEN")

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get KEY",
		Short:   "Print one configuration value",
		Example: `  catalogctl config get api.catalog.url`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(formatConfigValue(args[0], v))
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. The value is validated
// together with the rest of the file before it is saved.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one configuration value",
		Example: `  catalogctl config set output.default_format json
  catalogctl config set console.debounce_ms 500`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == tokenKey && config.GetResolvedProjectDir() != "" {
				return errProjectToken
			}
			cfg, err := loadConfigFile()
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s in %s\n", args[0], cfg.ConfigPath())
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every configuration value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := config.GetGlobalConfig().List()
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				cmd.Printf("%s=%s\n", k, formatConfigValue(k, values[k]))
			}
			return nil
		},
	}
}

// loadConfigFile reads the file config set writes to, without environment
// overrides, so that env values are not persisted.
func loadConfigFile() (*config.Config, error) {
	path := config.GetGlobalConfig().ConfigPath()
	if dir := config.GetResolvedProjectDir(); dir != "" {
		path = filepath.Join(dir, "config.yaml")
	}
	if path == "" {
		return nil, errors.New("no configuration file location; run 'catalogctl config init'")
	}

	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err := cfg.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return cfg, nil
}

// formatConfigValue renders a value as YAML scalar text, masking the token.
func formatConfigValue(key string, v interface{}) string {
	if key == tokenKey {
		if s, _ := v.(string); s != "" {
			return "********"
		}
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(string(out), "\n")
}
