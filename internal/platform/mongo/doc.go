// Package mongo provides the MongoDB implementation of store.DocumentStore.
// It owns the client connection, translates store filters and queries into
// MongoDB query documents, and maps driver errors onto the store package's
// sentinel errors.
package mongo
