// Package mongodb implements the store interfaces on MongoDB.
//
// It owns the client lifecycle (connect, ping, index setup, disconnect), one
// store type per collection, the mapping of driver errors onto the store
// error taxonomy, and the session-based transaction runner.
package mongodb
