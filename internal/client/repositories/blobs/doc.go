// Package blobs is the persistence port of the notes client: a key/value store
// of opaque byte blobs. Backends (memory, SQLite, PostgreSQL, Redis, S3) and
// decorators (encryption, circuit breaker) all satisfy Repository.
package blobs
