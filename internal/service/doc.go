// Package service holds the listing and request use cases. Services load
// records through store.DocumentStore, run the ownership guard in
// service/authz before any write or scoped read, and wrap infrastructure
// failures in ServiceError so the API layer can classify them with
// errors.Is.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete store implementation.
package service
