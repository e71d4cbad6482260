// Package cache stores compiled base definitions per source file so unchanged
// files skip analysis on the next run.
//
// Entries are keyed by Key: the schema version, the configured core module and
// the dependency-aware file hash. The on-disk layer encodes Payload with
// msgpack and replaces files atomically; Memory keeps the same payloads for
// the lifetime of a process.
package cache
