// Package store provides durable key/value persistence for the catalog.
//
// The catalog lives in process memory; after every successful mutation the
// repository writes each affected collection back as a whole JSON document
// under a fixed key. This mirrors the original deployment where the three
// documents (ingredients, recipes, preferences) were independent values in
// browser local storage.
//
// Two drivers are available:
//   - FileStore: one JSON file per key under a data directory (default).
//   - DBStore: a GORM-backed key/value table (SQLite or MySQL).
//
// Persistence is fire-and-forget from the repository's perspective; there is
// no transactional coupling between the in-memory mutation and the write.
package store
