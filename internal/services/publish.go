package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/parcelreg/parcel/pkg/credentials"
	srvErrors "github.com/parcelreg/parcel/pkg/errors"
)

// Publish uploads a package archive with metadata from the local
// manifest. Both preconditions (stored credential, readable manifest)
// are checked before any network call.
type Publish struct {
	client      RegistryClient
	store       credentials.Store
	descriptors DescriptorReader
	log         *zap.SugaredLogger
}

func NewPublishService(client RegistryClient, store credentials.Store, descriptors DescriptorReader) *Publish {
	return &Publish{
		client:      client,
		store:       store,
		descriptors: descriptors,
		log:         zap.S().Named("publish_service"),
	}
}

// Run publishes the archive at archivePath and returns the server's
// confirmation message.
func (s *Publish) Run(ctx context.Context, archivePath string) (string, error) {
	apiKey, err := s.store.Load()
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return "", srvErrors.NewNotAuthenticatedError()
		}
		return "", err
	}

	desc, err := s.descriptors.Read()
	if err != nil {
		return "", err
	}
	s.log.Debugw("publishing package", "name", desc.Name, "version", desc.Version, "archive", archivePath)

	return s.client.Publish(ctx, apiKey, *desc, archivePath)
}
