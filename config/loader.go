package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/nrislani/iics-promote/errors"
)

// ConfigFileName is the optional per-repo settings file picked up from the
// working directory when --config is not given.
const ConfigFileName = "iicspromote.yml"

// Load builds the effective configuration: optional .env file, optional
// YAML settings file, then the environment on top. Environment variables
// always win over the file.
func Load(prefix, configFile string) (*Config, error) {
	LoadDotEnv()

	cfg := &Config{}

	path := configFile
	if path == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			path = ConfigFileName
		}
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(prefix)
	cfg.SetDefaults()
	return cfg, nil
}

// fileConfig mirrors the YAML layout. Tuning stays a raw map so duration
// strings like "20s" can be decoded through mapstructure below.
type fileConfig struct {
	LoginURL     string                 `yaml:"login_url"`
	PodURL       string                 `yaml:"pod_url"`
	ResourceType string                 `yaml:"resource_type"`
	RepoName     string                 `yaml:"repo_name"`
	Tuning       map[string]interface{} `yaml:"tuning"`
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid,
			fmt.Sprintf("cannot read config file %s", path)).WithDetail("path", path)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid,
			fmt.Sprintf("cannot parse config file %s", path)).WithDetail("path", path)
	}

	cfg.LoginURL = raw.LoginURL
	cfg.PodURL = raw.PodURL
	cfg.ResourceType = raw.ResourceType
	cfg.RepoName = raw.RepoName

	if raw.Tuning != nil {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
			Result:     &cfg.Tuning,
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "cannot build tuning decoder")
		}
		if err := decoder.Decode(raw.Tuning); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid tuning section in %s", path)).WithDetail("path", path)
		}
	}

	return nil
}
