// Package store defines the document persistence contract used by the
// services. Implementations live under internal/platform (MongoDB and an
// in-memory store); services only ever see DocumentStore, Collection and the
// immutable Query/Filter values defined here.
package store
