package cache

import (
	"crypto/sha256"
	"encoding/binary"

	"basedef/internal/project"
)

// Key derives the cache key of a file from its dependency-aware hash.
func Key(coreModule string, fileHash project.Digest) project.Digest {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], SchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write([]byte(coreModule))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(fileHash[:])
	var out project.Digest
	copy(out[:], h.Sum(nil))
	return out
}
