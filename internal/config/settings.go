package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GenerationSettings is the flag and credential one orchestrated call runs with.
type GenerationSettings struct {
	Enabled bool
	APIKey  string
}

// HasCredential reports whether a non-blank credential is present.
func (s GenerationSettings) HasCredential() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// String never prints the credential.
func (s GenerationSettings) String() string {
	key := "<unset>"
	if s.HasCredential() {
		key = "<set>"
	}
	return fmt.Sprintf("GenerationSettings{Enabled: %t, APIKey: %s}", s.Enabled, key)
}

// SettingsProvider yields the settings for the next call.
type SettingsProvider interface {
	GenerationSettings() GenerationSettings
}

// Source reads generation settings from viper on every call, so a flag flip or credential
// rotation in the environment takes effect on the next request without a restart.
type Source struct {
	v *viper.Viper
}

// NewSource wraps a viper instance built by New.
func NewSource(v *viper.Viper) *Source {
	return &Source{v: v}
}

// GenerationSettings reads the current flag and credential.
func (s *Source) GenerationSettings() GenerationSettings {
	return GenerationSettings{
		Enabled: s.v.GetBool("generation.enabled"),
		APIKey:  s.v.GetString("generation.api_key"),
	}
}

// Static is a fixed SettingsProvider, used by the CLI after flag parsing and in tests.
type Static GenerationSettings

// GenerationSettings returns the fixed settings.
func (s Static) GenerationSettings() GenerationSettings {
	return GenerationSettings(s)
}
