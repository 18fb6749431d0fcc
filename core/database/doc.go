// Package database establishes GORM connections for the optional
// database-backed catalog store.
//
// SQLite is the default driver: the catalog is a single-user dataset and a
// local file mirrors the original deployment model. MySQL is supported for
// installs that want the catalog on a shared server.
package database
