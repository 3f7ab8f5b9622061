// Package config loads the extraction profile that drives a dataset run.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Azure configures access to an Azure OpenAI resource instead of the public
// OpenAI API.
type Azure struct {
	Enabled              bool   `mapstructure:"enabled"`
	Endpoint             string `mapstructure:"endpoint"`
	UseDefaultCredential bool   `mapstructure:"use_default_credential"`
}

// Profile holds the tunables for one extraction run. The API key is not
// stored in the profile: APIKeyEnv names the environment variable to read it
// from.
type Profile struct {
	Model        string  `mapstructure:"model"`
	BaseURL      string  `mapstructure:"base_url"`
	APIKeyEnv    string  `mapstructure:"api_key_env"`
	Stub         bool    `mapstructure:"stub"`
	Azure        Azure   `mapstructure:"azure"`
	PagesPerCall int     `mapstructure:"pages_per_call"`
	MaxInFlight  int64   `mapstructure:"max_in_flight"`
	RenderDPI    float64 `mapstructure:"render_dpi"`
}

// LoadProfile reads a profile file and applies defaults.
func LoadProfile(profilePath string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	v.SetDefault("api_key_env", "OPENAI_API_KEY")
	v.SetDefault("pages_per_call", 2)
	v.SetDefault("max_in_flight", 10)
	v.SetDefault("render_dpi", 500)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if !profile.Stub && profile.Model == "" {
		return nil, fmt.Errorf("profile %s does not name a model", profilePath)
	}
	if profile.Azure.Enabled && profile.Azure.Endpoint == "" {
		return nil, fmt.Errorf("profile %s enables azure without an endpoint", profilePath)
	}

	return &profile, nil
}

// APIKey resolves the configured API key from the environment.
func (p *Profile) APIKey() string {
	return os.Getenv(p.APIKeyEnv)
}
