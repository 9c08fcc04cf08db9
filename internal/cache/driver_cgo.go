//go:build cgosqlite

package cache

// Compiled with the cgosqlite tag for the C SQLite implementation:
//
//	CGO_ENABLED=1 go build -tags cgosqlite ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the SQLite driver to use.
const DriverName = "sqlite3"
