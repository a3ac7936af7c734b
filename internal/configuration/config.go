package configuration

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const FilePath = "configuration/configuration.yaml"

var ErrMalformedUrl = errors.New("malformed url")

const (
	LocalTarget  = "local"
	RemoteTarget = "remote"

	DefaultLocalUrl     = "http://127.0.0.1:5000"
	DefaultAdvisoryPath = "/api/advisory"
	DefaultHealthPath   = "/"
	DefaultPayloadFile  = "test_payload.json"
)

type Config struct {
	AdvisoryClientSettings AdvisoryClientSettings `yaml:"advisory_client_settings"`
	PayloadFile            string                 `yaml:"payload_file"`
	Logging                LoggingSettings        `yaml:"logging"`
}

type AdvisoryClientSettings struct {
	ActiveTarget   string            `yaml:"active_target"`
	Targets        map[string]string `yaml:"targets"`
	AdvisoryPath   string            `yaml:"advisory_path"`
	HealthPath     string            `yaml:"health_path"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

type LoggingSettings struct {
	Level string `yaml:"level"`
}

// Default mirrors the hard-coded smoke test: local target, no timeout.
func Default() *Config {
	return &Config{
		AdvisoryClientSettings: AdvisoryClientSettings{
			ActiveTarget: LocalTarget,
			Targets: map[string]string{
				LocalTarget:  DefaultLocalUrl,
				RemoteTarget: "",
			},
			AdvisoryPath: DefaultAdvisoryPath,
			HealthPath:   DefaultHealthPath,
		},
		PayloadFile: DefaultPayloadFile,
		Logging:     LoggingSettings{Level: "info"},
	}
}

func Load() (*Config, error) {
	return LoadFrom(FilePath)
}

// LoadFrom reads the yaml at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	settings := &c.AdvisoryClientSettings
	if settings.ActiveTarget == "" {
		settings.ActiveTarget = LocalTarget
	}
	if settings.Targets == nil {
		settings.Targets = map[string]string{}
	}
	if _, ok := settings.Targets[LocalTarget]; !ok {
		settings.Targets[LocalTarget] = DefaultLocalUrl
	}
	if settings.AdvisoryPath == "" {
		settings.AdvisoryPath = DefaultAdvisoryPath
	}
	if settings.HealthPath == "" {
		settings.HealthPath = DefaultHealthPath
	}
	if c.PayloadFile == "" {
		c.PayloadFile = DefaultPayloadFile
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Timeout of zero means the client waits indefinitely.
func (s AdvisoryClientSettings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// TargetNames is sorted so prompts list targets in a stable order.
func (s AdvisoryClientSettings) TargetNames() []string {
	names := make([]string, 0, len(s.Targets))
	for name := range s.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTarget returns the base url of the named target, or of the active
// target when name is empty.
func (s AdvisoryClientSettings) ResolveTarget(name string) (*url.URL, error) {
	if name == "" {
		name = s.ActiveTarget
	}

	rawUrl, ok := s.Targets[name]
	if !ok {
		return nil, fmt.Errorf("unknown target %q, configured targets: %s", name, strings.Join(s.TargetNames(), ", "))
	}
	if rawUrl == "" {
		return nil, fmt.Errorf("target %q has no url configured", name)
	}

	return ParseBaseUrl(rawUrl)
}

func ParseBaseUrl(rawUrl string) (*url.URL, error) {
	baseUrl, err := url.Parse(rawUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing base url to a url type, %w", ErrMalformedUrl, err)
	}
	if baseUrl.Scheme != "http" && baseUrl.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url %q must use http or https", ErrMalformedUrl, rawUrl)
	}
	if baseUrl.Host == "" {
		return nil, fmt.Errorf("%w: base url %q has no host", ErrMalformedUrl, rawUrl)
	}

	return baseUrl, nil
}

// Save writes the config as yaml, creating the parent directory.
func Save(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshalling configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s, %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing file at %s, %w", path, err)
	}

	return nil
}
