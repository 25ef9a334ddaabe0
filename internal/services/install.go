package services

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/parcelreg/parcel/internal/models"
	srvErrors "github.com/parcelreg/parcel/pkg/errors"
)

// Install resolves a package to its latest version, streams the archive
// from the registry, and places it in the install folder. The archive
// is written to a temp file and renamed only after the stream finished,
// so no partial file ever carries the final name.
type Install struct {
	client RegistryClient
	folder string
	log    *zap.SugaredLogger
}

func NewInstallService(client RegistryClient, folder string) *Install {
	return &Install{
		client: client,
		folder: folder,
		log:    zap.S().Named("install_service"),
	}
}

// Run installs the named package and returns the path of the archive it
// wrote. A failed lookup aborts before any file or directory is created.
func (s *Install) Run(ctx context.Context, name string) (string, error) {
	details, err := s.client.Details(ctx, name)
	if err != nil {
		return "", err
	}
	s.log.Debugw("resolved package", "name", name, "version", details.Version)

	body, err := s.client.Download(ctx, name, details.Version)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if err := os.MkdirAll(s.folder, 0755); err != nil {
		return "", srvErrors.NewInstallError(name, err)
	}

	target := filepath.Join(s.folder, models.ArchiveFileName(name, details.Version))
	if err := writeAtomically(target, body); err != nil {
		return "", srvErrors.NewInstallError(name, err)
	}

	s.log.Debugw("package installed", "path", target)
	return target, nil
}

// writeAtomically streams r into target via a sibling temp file. Any
// failure removes the temp file; target only appears on success.
func writeAtomically(target string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".partial.*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
