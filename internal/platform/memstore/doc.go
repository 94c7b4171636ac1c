// Package memstore implements store.DocumentStore in process memory.
//
// Documents go through the same BSON encoding as the MongoDB store, so struct
// tags, inline extras and Timestamp values behave identically. Filters, sort
// order, skip/limit windows and $set updates follow MongoDB semantics for the
// subset of operators the store package exposes. The store backs the
// "memory" database driver and serves as the store double in tests.
package memstore
