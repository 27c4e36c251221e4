// Package sqlite implements the slugging store interfaces over SQLite
// using the cgo-free modernc.org/sqlite driver.
//
// It mirrors the postgres package: register a table mapping per record
// type, hand the store to the engine, and run assignment inside the
// transaction that writes the record. [Store.EnsureSchema] creates the
// slug history table.
//
//	sqlDB, err := sqlite.Open(filepath.Join(dir, "app.db"))
//	store := sqlite.New(sqlDB)
//	if err := store.EnsureSchema(ctx); err != nil { ... }
//
// The slug column needs a UNIQUE constraint; [IsUniqueViolation]
// classifies the error a losing concurrent writer receives.
package sqlite
