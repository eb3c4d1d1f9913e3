package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/nrislani/iics-promote/logging"
)

// PrefixUAT selects the UAT org credentials (UAT_IICS_USERNAME and
// UAT_IICS_PASSWORD). The empty prefix selects the dev org credentials.
const PrefixUAT = "UAT_"

// LoadDotEnv loads a local .env file if one exists. CI supplies real
// environment variables, so a missing file is only worth a debug line.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		logging.NewLogger("config").Debug(".env file not found, using system environment variables")
	}
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// FromEnv builds a Config from environment variables alone. The prefix
// applies to the credential variables only; URLs and filters are shared
// between the dev and UAT phases of the pipeline.
func FromEnv(prefix string) *Config {
	cfg := &Config{envPrefix: prefix}
	cfg.applyEnv(prefix)
	cfg.SetDefaults()
	return cfg
}

// applyEnv overlays environment variables onto the config. Set variables
// win over whatever the YAML file provided.
func (c *Config) applyEnv(prefix string) {
	c.envPrefix = prefix
	c.LoginURL = GetEnv("IICS_LOGIN_URL", c.LoginURL)
	c.PodURL = GetEnv("IICS_POD_URL", c.PodURL)
	c.Username = GetEnv(prefix+"IICS_USERNAME", c.Username)
	c.Password = GetEnv(prefix+"IICS_PASSWORD", c.Password)
	c.ResourceType = GetEnv("RESOURCE_TYPE", c.ResourceType)
	c.RepoName = GetEnv("REPO_NAME", c.RepoName)
}
