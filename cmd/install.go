package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parcelreg/parcel/internal/config"
	"github.com/parcelreg/parcel/internal/services"
	"github.com/parcelreg/parcel/pkg/registry"
)

func NewInstallCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "install <packageName>",
		Short: "Download the latest version of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := registry.NewClient(cfg.Registry.URL)

			install := services.NewInstallService(client, cfg.Install.Folder)
			path, err := install.Run(cmd.Context(), args[0])
			if err != nil {
				return reportError(cmd, err)
			}
			reportSuccess(cmd, fmt.Sprintf("installed %s to %s", args[0], path))
			return nil
		},
	}
}
