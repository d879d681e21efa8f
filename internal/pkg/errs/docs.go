// Package errs defines the error vocabulary shared by the domain model,
// the use case layer, and the persistence adapters.
//
// Each failure category pairs a sentinel error with a typed error. The
// sentinel is the errors.Is target; the typed error carries the parameter
// name, the offending value, and an optional cause for errors.As callers.
// HTTP handlers map these categories onto status codes: a missing object
// becomes 404, an invalid or missing value becomes 400.
//
// Constructors come in two forms, NewXError and NewXErrorWithCause. Use
// the latter when wrapping a lower level failure such as a parse error,
// so the cause appears in the rendered message and the log line.
package errs
