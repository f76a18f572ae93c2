// Package mongo provides a store.KitStore backed by a MongoDB collection.
// Each kit is one document keyed by its id; the kit body is kept as a
// nested document so it stays queryable from the mongo shell.
package mongo
