package config

import (
	"time"

	"github.com/nrislani/iics-promote/errors"
)

// DefaultLoginURL is the Informatica global login endpoint used when
// IICS_LOGIN_URL is not set.
const DefaultLoginURL = "https://dm-em.informaticacloud.com"

// DefaultResourceType is the asset type promoted when RESOURCE_TYPE is not
// set. MTT is a mapping task.
const DefaultResourceType = "MTT"

// knownResourceTypes are the IICS asset types the promotion pipeline can
// meaningfully trigger test jobs for.
var knownResourceTypes = map[string]bool{
	"MTT":       true, // mapping task
	"DSS":       true, // synchronization task
	"DMASK":     true, // masking task
	"DRS":       true, // replication task
	"DTEMPLATE": true, // mapping
	"MAPPLET":   true,
	"WORKFLOW":  true,
	"TASKFLOW":  true,
}

// Config holds the settings for one IICS org. Credentials only ever come
// from the environment; the optional iicspromote.yml file carries the
// non-secret knobs.
type Config struct {
	LoginURL     string `yaml:"login_url"`
	PodURL       string `yaml:"pod_url"`
	Username     string `yaml:"-"`
	Password     string `yaml:"-"`
	ResourceType string `yaml:"resource_type"`
	RepoName     string `yaml:"repo_name"`

	Tuning Tuning `yaml:"tuning"`

	// envPrefix records which credential prefix built this config ("" for
	// dev, "UAT_" for UAT) so validation errors name the actual variable.
	envPrefix string
}

// Tuning collects the polling and retry knobs. Durations in the YAML file
// use Go syntax ("20s", "30m").
type Tuning struct {
	JobPollInterval  time.Duration `yaml:"job_poll_interval" mapstructure:"job_poll_interval"`
	JobPollTimeout   time.Duration `yaml:"job_poll_timeout" mapstructure:"job_poll_timeout"`
	PullPollInterval time.Duration `yaml:"pull_poll_interval" mapstructure:"pull_poll_interval"`
	RetryMaxAttempts int           `yaml:"retry_max_attempts" mapstructure:"retry_max_attempts"`
	RetryBaseDelay   time.Duration `yaml:"retry_base_delay" mapstructure:"retry_base_delay"`
	RetryMaxDelay    time.Duration `yaml:"retry_max_delay" mapstructure:"retry_max_delay"`
}

// SetDefaults fills in any unset fields with their documented defaults.
func (c *Config) SetDefaults() {
	if c.LoginURL == "" {
		c.LoginURL = DefaultLoginURL
	}
	if c.ResourceType == "" {
		c.ResourceType = DefaultResourceType
	}
	if c.Tuning.JobPollInterval == 0 {
		c.Tuning.JobPollInterval = 20 * time.Second
	}
	if c.Tuning.JobPollTimeout == 0 {
		c.Tuning.JobPollTimeout = 30 * time.Minute
	}
	if c.Tuning.PullPollInterval == 0 {
		c.Tuning.PullPollInterval = 10 * time.Second
	}
	if c.Tuning.RetryMaxAttempts == 0 {
		c.Tuning.RetryMaxAttempts = 4
	}
	if c.Tuning.RetryBaseDelay == 0 {
		c.Tuning.RetryBaseDelay = 2 * time.Second
	}
	if c.Tuning.RetryMaxDelay == 0 {
		c.Tuning.RetryMaxDelay = 10 * time.Second
	}
}

// Validate checks that everything an API session needs is present. It runs
// before any network call. PodURL is not required here: login derives it
// from the response's product baseApiUrl when the environment leaves it
// unset.
func (c *Config) Validate() error {
	if c.LoginURL == "" {
		return errors.ConfigMissing("IICS_LOGIN_URL")
	}
	if c.Username == "" {
		return errors.ConfigMissing(c.envPrefix + "IICS_USERNAME")
	}
	if c.Password == "" {
		return errors.ConfigMissing(c.envPrefix + "IICS_PASSWORD")
	}
	if !knownResourceTypes[c.ResourceType] {
		return errors.ConfigInvalid("unknown resource type '" + c.ResourceType + "'")
	}
	return nil
}
