// Package storage wraps an S3-compatible object store used for offsite
// backups.
//
// The Client interface narrows the Minio SDK to the handful of operations
// the backup feature needs (bucket checks, put/get/list/remove) so tests can
// substitute the generated mock in storage/mocks.
package storage
