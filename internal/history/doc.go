// Package history persists past queries and selections in SQLite.
//
// The Store manages the database connection, schema initialization, and
// the record/list/clear operations the CLI exposes. A file lock next to
// the database serializes writers across concurrent sift instances.
//
// The database is a convenience log, not an archive: schema changes bump
// the version in schema.go and users clear the file to adopt it.
package history
