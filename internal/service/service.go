// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, enforces the domain rules, turns missing records into
// not-found errors, and calls the repositories.
package service
