// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters of the dispatch service.
//
// Every type pairs a sentinel with a detail struct and unwraps to the
// sentinel, so callers classify with errors.Is and inspect with errors.As:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input
//   - RejectedBatchError: a batch create with failing entries, unwraps to ErrValueIsInvalid
//   - ObjectNotFoundError: a courier or order that does not exist
//   - ConflictError: another transaction locked or changed the same rows first
//
// The HTTP adapter maps the sentinels to 400, 404 and 409; anything else is an
// internal error.
package errs
