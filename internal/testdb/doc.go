// Package testdb provides utilities for integration tests against real
// backing services (PostgreSQL, Redis, MongoDB).
//
// Tests locate each service through an environment variable and are skipped
// when it is unset, so `go test -tags=integration ./...` runs cleanly on a
// machine without any of them.
//
// PostgreSQL tests use transaction isolation: WithTx runs the test body in a
// transaction that is always rolled back, so tests can run in parallel
// without cleanup.
//
//	func TestKitStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresKitStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
