package cmd

import (
	"github.com/spf13/cobra"

	"github.com/parcelreg/parcel/internal/config"
	"github.com/parcelreg/parcel/internal/services"
	"github.com/parcelreg/parcel/pkg/credentials"
	"github.com/parcelreg/parcel/pkg/registry"
)

func NewLoginCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Authenticate and store an API key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := registry.NewClient(cfg.Registry.URL)
			store := credentials.NewDiskStore(cfg.Credentials.Folder)

			if err := services.NewLoginService(client, store).Run(cmd.Context(), args[0], args[1]); err != nil {
				return reportError(cmd, err)
			}
			reportSuccess(cmd, "logged in successfully")
			return nil
		},
	}
}

func NewLogoutCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := credentials.NewDiskStore(cfg.Credentials.Folder)

			loggedIn, err := services.NewLogoutService(store).Run()
			if err != nil {
				return reportError(cmd, err)
			}
			if !loggedIn {
				reportSuccess(cmd, "not logged in, nothing to do")
				return nil
			}
			reportSuccess(cmd, "logged out")
			return nil
		},
	}
}
