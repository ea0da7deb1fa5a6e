// Package handler contains the HTTP handlers.
//
// Handlers bind and validate requests through the generic Handle and
// HandleNoContent wrappers, call the service layer, and return results for
// the wrappers to serialize. Errors are returned untouched and rendered by the
// global error handler.
package handler
