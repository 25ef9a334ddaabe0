package errors

import (
	"errors"
	"fmt"
)

// NotAuthenticatedError indicates no API key is stored locally.
// It is raised before any network call is attempted.
type NotAuthenticatedError struct{}

func NewNotAuthenticatedError() *NotAuthenticatedError {
	return &NotAuthenticatedError{}
}

func (e *NotAuthenticatedError) Error() string {
	return "not authenticated, run 'parcel login' first"
}

// IsNotAuthenticatedError checks if the error is a NotAuthenticatedError.
func IsNotAuthenticatedError(err error) bool {
	var e *NotAuthenticatedError
	return errors.As(err, &e)
}

// ManifestError indicates the local package manifest is missing or invalid.
type ManifestError struct {
	Path   string
	Reason string
}

func NewManifestNotFoundError(path string) *ManifestError {
	return &ManifestError{Path: path, Reason: "not found in the current directory"}
}

func NewManifestInvalidError(path string, err error) *ManifestError {
	return &ManifestError{Path: path, Reason: err.Error()}
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %s", e.Path, e.Reason)
}

// IsManifestError checks if the error is a ManifestError.
func IsManifestError(err error) bool {
	var e *ManifestError
	return errors.As(err, &e)
}

// ServerError wraps a non-2xx registry response. Message carries the
// server-provided error field when the body had one, otherwise the
// HTTP status text.
type ServerError struct {
	StatusCode int
	Message    string
}

func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{StatusCode: statusCode, Message: message}
}

func (e *ServerError) Error() string {
	return e.Message
}

// IsServerError checks if the error is a ServerError.
func IsServerError(err error) bool {
	var e *ServerError
	return errors.As(err, &e)
}

// PackageNotFoundError indicates the registry has no package with the
// requested name.
type PackageNotFoundError struct {
	Name string
}

func NewPackageNotFoundError(name string) *PackageNotFoundError {
	return &PackageNotFoundError{Name: name}
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package not found: %s", e.Name)
}

// IsPackageNotFoundError checks if the error is a PackageNotFoundError.
func IsPackageNotFoundError(err error) bool {
	var e *PackageNotFoundError
	return errors.As(err, &e)
}

// InstallError indicates a failure while streaming a downloaded archive
// to disk. The partial file has been removed by the time it is returned.
type InstallError struct {
	Package string
	Err     error
}

func NewInstallError(pkg string, err error) *InstallError {
	return &InstallError{Package: pkg, Err: err}
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install %s: %v", e.Package, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// IsInstallError checks if the error is an InstallError.
func IsInstallError(err error) bool {
	var e *InstallError
	return errors.As(err, &e)
}
