package cmd

import (
	"github.com/spf13/cobra"

	"github.com/parcelreg/parcel/internal/config"
	"github.com/parcelreg/parcel/internal/services"
	"github.com/parcelreg/parcel/pkg/registry"
)

func NewSearchCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the registry catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := registry.NewClient(cfg.Registry.URL)

			search := services.NewSearchService(client, cmd.OutOrStdout())
			if err := search.Run(cmd.Context(), args[0]); err != nil {
				return reportError(cmd, err)
			}
			return nil
		},
	}
}
