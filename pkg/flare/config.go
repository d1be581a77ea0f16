// config.go loads setting overrides from the process environment and from
// YAML files. Loaded values are overrides, layered the same way explicit Set
// calls are: override wins over default, last write wins.

package flare

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// envPrefix marks environment variables the loader reads (FLARE_API_KEY,
// FLARE_API_URL, FLARE_PROXY_HOST, ...).
const envPrefix = "FLARE_"

// loadedSettings mirrors the settings file and the recognized environment
// variables. Zero values mean "leave the current layer alone".
type loadedSettings struct {
	APIKey             string   `koanf:"api_key" yaml:"api_key"`
	APIURL             string   `koanf:"api_url" yaml:"api_url" validate:"omitempty,url"`
	Version            string   `koanf:"version" yaml:"version"`
	IgnoreList         []string `koanf:"ignore_list" yaml:"ignore_list"`
	FilteredParameters []string `koanf:"filtered_parameters" yaml:"filtered_parameters"`
	ProxyHost          string   `koanf:"proxy_host" yaml:"proxy_host"`
	ProxyPort          int      `koanf:"proxy_port" yaml:"proxy_port" validate:"omitempty,min=1,max=65535"`
	ProxyUser          string   `koanf:"proxy_user" yaml:"proxy_user"`
	ProxyPassword      string   `koanf:"proxy_password" yaml:"proxy_password"`
}

// envListSettings are the variables whose value is a comma-separated list
// (FLARE_IGNORE_LIST="RecordNotFound,RoutingError").
var envListSettings = map[string]bool{
	SettingIgnoreList:         true,
	SettingFilteredParameters: true,
}

// LoadEnv applies FLARE_-prefixed environment variables as overrides.
func (s *Settings) LoadEnv() error {
	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		name := strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if envListSettings[name] {
			return name, splitEnvList(value)
		}
		return name, value
	}), nil)
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	var loaded loadedSettings
	if err := k.Unmarshal("", &loaded); err != nil {
		return fmt.Errorf("unmarshal environment settings: %w", err)
	}
	return s.apply(&loaded)
}

// splitEnvList breaks a comma-separated value into entries, dropping
// surrounding whitespace and empty segments.
func splitEnvList(value string) []string {
	parts := strings.Split(value, ",")
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}

// LoadFile applies overrides from a YAML settings file.
func (s *Settings) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}

	var loaded loadedSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse settings file: %w", err)
	}
	return s.apply(&loaded)
}

// apply validates the loaded values and stores each non-zero field as an
// override.
func (s *Settings) apply(loaded *loadedSettings) error {
	if err := validator.New().Struct(loaded); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	if loaded.APIKey != "" {
		s.SetAPIKey(loaded.APIKey)
	}
	if loaded.APIURL != "" {
		s.SetAPIURL(loaded.APIURL)
	}
	if loaded.Version != "" {
		s.SetVersion(loaded.Version)
	}
	if len(loaded.IgnoreList) > 0 {
		s.SetIgnoreList(loaded.IgnoreList)
	}
	if len(loaded.FilteredParameters) > 0 {
		s.SetFilteredParameters(loaded.FilteredParameters)
	}
	if loaded.ProxyHost != "" {
		s.SetProxyHost(loaded.ProxyHost)
	}
	if loaded.ProxyPort != 0 {
		s.SetProxyPort(loaded.ProxyPort)
	}
	if loaded.ProxyUser != "" {
		s.SetProxyUser(loaded.ProxyUser)
	}
	if loaded.ProxyPassword != "" {
		s.SetProxyPassword(loaded.ProxyPassword)
	}
	return nil
}
