// Package errs provides the typed errors shared by the restaurant order service.
// Every error type follows the same shape so callers can classify failures
// with errors.Is against the package sentinels:
//
//   - ObjectNotFoundError (ErrObjectNotFound): an identifier resolves to nothing
//   - ValueIsInvalidError (ErrValueIsInvalid): a malformed value
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange): a value outside its bounds
//   - ValueIsRequiredError (ErrValueIsRequired): a missing value
//   - ConflictError (ErrConflict): the target's state forbids the operation,
//     for example mutating a finalized order
//
// Each type carries the parameter name and an optional cause, has a
// constructor with and without cause, and unwraps to its sentinel.
package errs
