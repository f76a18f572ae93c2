// Package postgres provides the PostgreSQL implementation of store.KitStore.
// It handles the details of database connections, schema migrations, query
// execution, and mapping between domain kits and database records.
//
// Kits are stored whole as JSONB alongside their id and creation time, so
// schema changes to the generated content never need a migration.
package postgres
