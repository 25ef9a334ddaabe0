// Package services contains the flow orchestrators behind each CLI
// command. Every flow runs once to completion or to its first failure;
// collaborators are injected so tests can swap the transport and the
// filesystem.
package services

import (
	"context"
	"io"

	"github.com/parcelreg/parcel/internal/models"
)

// RegistryClient is the subset of the registry client consumed by the
// flows.
type RegistryClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateAPIToken(ctx context.Context, sessionToken string) (string, error)
	Publish(ctx context.Context, apiKey string, desc models.PackageDescriptor, archivePath string) (string, error)
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Details(ctx context.Context, name string) (*models.PackageDetails, error)
	Download(ctx context.Context, name, version string) (io.ReadCloser, error)
}

// DescriptorReader yields the publish metadata from the local manifest.
type DescriptorReader interface {
	Read() (*models.PackageDescriptor, error)
}
