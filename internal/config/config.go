// Package config holds the process configuration for the parcel CLI.
//
// Defaults come from struct tags (creasty/defaults); values can be
// overridden by flags or PARCEL_* environment variables, bound in cmd.
package config

import (
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

type Registry struct {
	// URL is the registry base URL. Fixed for the hosted deployment,
	// injectable for tests.
	URL string `default:"https://registry.parcelreg.io" validate:"required,url"`
}

type Credentials struct {
	// Folder holds credentials.json. Empty means $HOME/.parcel.
	Folder string `validate:"required"`
}

type Install struct {
	// Folder is where downloaded archives land, relative to the
	// working directory unless absolute.
	Folder string `default:"parcel_packages" validate:"required"`
}

type Configuration struct {
	Registry    Registry
	Credentials Credentials
	Install     Install
	Verbose     bool
}

// NewConfigurationWithDefaults returns a Configuration populated from
// default tags. The credentials folder default depends on the user's
// home directory, so it is computed here rather than in a tag.
func NewConfigurationWithDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}

	if cfg.Credentials.Folder == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Credentials.Folder = filepath.Join(home, ".parcel")
	}

	return cfg
}

// Validate checks the configuration is complete enough to run a command.
func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}
