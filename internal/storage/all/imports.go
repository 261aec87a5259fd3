// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: importing it (even blank) runs the init
// functions of each backend, which register their factories. After that,
// storage.New can open "postgres" and "sqlite" repositories and callers stay
// backend-agnostic.
package all

import (
	_ "dwetl/internal/storage/postgres"
	_ "dwetl/internal/storage/sqlite"
)
