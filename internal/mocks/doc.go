// Package mocks holds hand-written test doubles for the generation, store,
// service and auth interfaces.
//
// Each mock has a function field per method. When the field is nil the mock
// falls back to its canned values (for example Reply and Err on
// MockProvider), so simple tests need no closures:
//
//	provider := &mocks.MockProvider{Reply: `{"colors": []}`}
//	kits := &mocks.MockKitStore{PutErr: errors.New("disk full")}
//
// Mocks record their calls under a mutex and are safe for concurrent use.
package mocks
