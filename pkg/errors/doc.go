// Package errors provides custom error types for the parcel CLI.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌────────────────────────┬──────────────────────────────────────────────┐
//	│ Error Type             │ Description                                  │
//	├────────────────────────┼──────────────────────────────────────────────┤
//	│ NotAuthenticatedError  │ No API key stored, privileged op refused     │
//	│ ManifestError          │ parcel.json missing or unparseable           │
//	│ ServerError            │ Non-2xx registry response with error field   │
//	│ PackageNotFoundError   │ Details lookup found no such package         │
//	│ InstallError           │ Download stream or disk write failed         │
//	└────────────────────────┴──────────────────────────────────────────────┘
//
// NotAuthenticatedError and ManifestError are local precondition failures:
// they are detected before any network request is made. ServerError carries
// the server-provided error text when the response body had one, so command
// handlers can show it verbatim instead of a generic HTTP status.
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	func IsServerError(err error) bool {
//	    var e *ServerError
//	    return errors.As(err, &e)
//	}
//
// This allows checking wrapped errors:
//
//	wrapped := fmt.Errorf("publish failed: %w", errors.NewNotAuthenticatedError())
//	errors.IsNotAuthenticatedError(wrapped) // returns true
package errors
