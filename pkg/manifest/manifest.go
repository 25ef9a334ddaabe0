// Package manifest reads the local package descriptor used for publishing.
//
// The descriptor lives in parcel.json in the working directory and is read
// fresh on every invocation; it is never cached.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/parcelreg/parcel/internal/models"
	srvErrors "github.com/parcelreg/parcel/pkg/errors"
)

// FileName is the descriptor file expected in the working directory.
const FileName = "parcel.json"

// Reader loads and validates package descriptors from a directory.
type Reader struct {
	dir      string
	validate *validator.Validate
}

// NewReader creates a Reader rooted at dir.
func NewReader(dir string) *Reader {
	return &Reader{
		dir:      dir,
		validate: validator.New(),
	}
}

// Read loads the descriptor from {dir}/parcel.json.
// Returns a ManifestError when the file is missing, unparseable, or
// fails validation (name and version are required).
func (r *Reader) Read() (*models.PackageDescriptor, error) {
	path := filepath.Join(r.dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, srvErrors.NewManifestNotFoundError(FileName)
		}
		return nil, srvErrors.NewManifestInvalidError(FileName, err)
	}

	var desc models.PackageDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, srvErrors.NewManifestInvalidError(FileName, err)
	}

	if err := r.validate.Struct(&desc); err != nil {
		return nil, srvErrors.NewManifestInvalidError(FileName, err)
	}

	return &desc, nil
}
