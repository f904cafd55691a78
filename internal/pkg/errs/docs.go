// Package errs provides the standardized error types used across the order
// tracking service.
//
// The package covers the three failure classes callers need to tell apart:
//   - ObjectNotFoundError: a referenced object (usually an order) does not exist
//   - ValueIsInvalidError: a supplied value failed validation (e.g. an unknown status)
//   - ValueIsRequiredError: a required value was missing
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// Transport adapters rely on the sentinels to map failures onto status codes
// without inspecting concrete types.
package errs
