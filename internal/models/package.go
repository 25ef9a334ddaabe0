package models

import "fmt"

// PackageDescriptor holds the publish metadata read from the local
// manifest. It is read fresh on every publish invocation, never cached.
type PackageDescriptor struct {
	Name        string `json:"name" validate:"required"`
	Version     string `json:"version" validate:"required"`
	Description string `json:"description"`
}

// SearchResult is one row of a registry search response, in server order.
type SearchResult struct {
	PackageName string `json:"package_name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

// PackageDetails is the transient lookup result used to resolve an
// install target to its latest published version.
type PackageDetails struct {
	Version string `json:"version"`
}

// ArchiveFileName returns the canonical on-disk name for an installed
// archive, <name>-<version>.zip.
func ArchiveFileName(name, version string) string {
	return fmt.Sprintf("%s-%s.zip", name, version)
}
