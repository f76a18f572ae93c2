// Package store defines interfaces for brand kit persistence.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so the service layer works the same way
// whether kits live in memory, on disk, in PostgreSQL, Redis or MongoDB.
//
// Implementations live under internal/platform; the shared conformance
// suite in internal/store/storetest exercises each of them.
package store
