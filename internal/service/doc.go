// Package service contains the application use cases. It sits between the
// HTTP layer and the generation core: it calls the generator, persists full
// kits through a store.KitStore, applies the optional retry policy and
// records metrics.
//
// The service package depends on the generation.Generator and store.KitStore
// interfaces only, never on a specific provider or storage backend.
package service
