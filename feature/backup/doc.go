// Package backup exports the catalog as a portable JSON document and imports
// such documents back, either merging into or overwriting the live catalog.
// An optional offsite component copies backup documents to an S3-compatible
// bucket.
package backup
