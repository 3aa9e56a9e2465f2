// Package sqlite provides a SQLite-backed DocumentStore.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation that needs no
// CGO. The schema mirrors the hosted paper table (paper_id, pdf_url,
// ai_generated_summary) so a local database can stand in for it.
//
// # Schema
//
// Migrations live in migrations/ as numbered .up.sql and .down.sql pairs.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.papersum/data/papersum.db
package sqlite
