//go:build !cgosqlite

package cache

// Compiled by default. Uses the pure Go SQLite implementation so the cache
// works with CGO_ENABLED=0 cross-compiles.
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

// DriverName is the SQLite driver to use.
const DriverName = "sqlite"
