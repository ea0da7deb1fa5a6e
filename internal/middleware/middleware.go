// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as request
// ids, request-scoped logging, New Relic tracing, CORS, rate limiting, panic
// recovery, and turning every returned error into the JSON error envelope.
package middleware
