// Package errs holds the error kinds shared by the dispatch domain, its
// adapters and the HTTP layer.
//
// Every kind pairs a sentinel with a struct carrying the details:
//   - ErrValueIsRequired / ValueIsRequiredError: an input was empty
//   - ErrValueIsInvalid / ValueIsInvalidError: an input was malformed
//   - ErrValueIsOutOfRange / ValueIsOutOfRangeError: a number fell outside [min..max]
//   - ErrObjectNotFound / ObjectNotFoundError: a parcel, location or run is unknown
//
// Callers classify with errors.Is against the sentinel; the HTTP adapter maps
// ErrObjectNotFound to 404. Constructors come in two forms, with and without
// a cause, and the cause is kept in the message.
//
//	if _, err := store.Get(id); errors.Is(err, errs.ErrObjectNotFound) {
//	    ...
//	}
package errs
