// Package iofs prepares trialwh directories and the config file.
package iofs

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/gnames/trialwh/pkg/config"
	"gopkg.in/yaml.v3"
)

// ConfigYAML is the documented config.yaml template.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories if they are
// missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the config template unless config.yaml
// already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if _, err := ParseConfig([]byte(ConfigYAML)); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ParseConfig decodes config.yaml content. Unknown keys are errors, so a
// typo in the file does not go unnoticed.
func ParseConfig(data []byte) (*config.Config, error) {
	var res config.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&res); err != nil {
		return nil, ConfigTemplateError(err)
	}
	return &res, nil
}
