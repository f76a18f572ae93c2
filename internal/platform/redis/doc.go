// Package redis provides a store.KitStore backed by Redis. Kits are stored
// as JSON strings under a configurable key prefix with an optional expiry,
// which makes it a good fit for short-lived preview-to-full handoffs.
package redis
