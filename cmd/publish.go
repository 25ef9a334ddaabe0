package cmd

import (
	"github.com/spf13/cobra"

	"github.com/parcelreg/parcel/internal/config"
	"github.com/parcelreg/parcel/internal/services"
	"github.com/parcelreg/parcel/pkg/credentials"
	"github.com/parcelreg/parcel/pkg/manifest"
	"github.com/parcelreg/parcel/pkg/registry"
)

func NewPublishCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <file>",
		Short: "Publish a package archive with metadata from parcel.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := registry.NewClient(cfg.Registry.URL)
			store := credentials.NewDiskStore(cfg.Credentials.Folder)

			publish := services.NewPublishService(client, store, manifest.NewReader("."))
			message, err := publish.Run(cmd.Context(), args[0])
			if err != nil {
				return reportError(cmd, err)
			}
			reportSuccess(cmd, message)
			return nil
		},
	}
}
