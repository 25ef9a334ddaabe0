// Package cmd wires the CLI surface: one cobra command per flow, flags
// bound to the configuration struct with PARCEL_* environment fallback.
package cmd

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/parcelreg/parcel/internal/config"
)

const envPrefix = "PARCEL"

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	root := &cobra.Command{
		Use:           "parcel",
		Short:         "parcel is a client for the parcel package registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.AutomaticEnv()
			viper.SetEnvPrefix(envPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd.Root())

			if err := cfg.Validate(); err != nil {
				return err
			}
			return setupLogger(cfg.Verbose)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Registry.URL, "registry-url", cfg.Registry.URL, "base URL of the package registry")
	flags.StringVar(&cfg.Credentials.Folder, "credentials-folder", cfg.Credentials.Folder, "folder holding the credentials file")
	flags.StringVar(&cfg.Install.Folder, "install-folder", cfg.Install.Folder, "folder downloaded archives are written to")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	root.AddCommand(
		NewLoginCommand(cfg),
		NewLogoutCommand(cfg),
		NewPublishCommand(cfg),
		NewSearchCommand(cfg),
		NewInstallCommand(cfg),
	)

	return root
}

// Execute runs the CLI. Errors have already been printed by the command
// that failed; only the exit code is left to set.
func Execute() {
	cfg := config.NewConfigurationWithDefaults()
	if err := NewRootCommand(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(verbose bool) error {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// reportError prints the single user-facing failure message for a flow.
// The error is still returned so the process exits non-zero, but cobra
// is silenced so nothing is printed twice.
func reportError(cmd *cobra.Command, err error) error {
	color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "Error:", err.Error())
	return err
}

func reportSuccess(cmd *cobra.Command, msg string) {
	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), msg)
}
