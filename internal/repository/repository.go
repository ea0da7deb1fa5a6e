// Package repository handles all interactions with the database.
//
// It holds the SQL for every record type and turns the keyed rows returned by
// the storage handle into model types, so services never see SQL or driver
// value types.
package repository
