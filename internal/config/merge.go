package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MergeProjectYAML decodes a project-local config file on top of target.
// Each known top-level section is decoded onto the current section, so a
// project file only needs the fields it changes. Unknown sections are
// ignored, and so is api.token: credentials come from the global file or
// the environment.
func MergeProjectYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeProjectYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing overlay YAML from %s: top level must be a mapping", overlayPath)
	}

	token := target.API.Token
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		section := target.section(key)
		if section == nil {
			continue
		}
		if err = root.Content[i+1].Decode(section); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	target.API.Token = token

	return nil
}

// section returns a pointer to the top-level section named key, or nil.
func (c *Config) section(key string) interface{} {
	switch key {
	case "api":
		return &c.API
	case "pagination":
		return &c.Pagination
	case "console":
		return &c.Console
	case "output":
		return &c.Output
	case "logging":
		return &c.Logging
	default:
		return nil
	}
}
