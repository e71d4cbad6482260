package cache

import (
	"sync"

	"basedef/internal/project"
)

// minimal per-process cache by file path + Key
type memEntry struct {
	key     project.Digest
	payload *Payload
}

// Memory keeps the newest payload of every file for the lifetime of a process.
type Memory struct {
	mu     sync.RWMutex
	byPath map[string]memEntry
}

// NewMemory creates a Memory cache with the given capacity hint.
func NewMemory(capHint int) *Memory {
	return &Memory{byPath: make(map[string]memEntry, capHint)}
}

// Get returns the payload for path if it was stored under key.
func (c *Memory) Get(path string, key project.Digest) (*Payload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	e, ok := c.byPath[path]
	c.mu.RUnlock()
	if !ok || e.key != key {
		return nil, false
	}
	return e.payload, true
}

// Put stores p under p.Path, replacing any older version.
func (c *Memory) Put(key project.Digest, p *Payload) {
	if c == nil || p == nil {
		return
	}
	c.mu.Lock()
	c.byPath[p.Path] = memEntry{key: key, payload: p}
	c.mu.Unlock()
}

// Len returns the number of cached files.
func (c *Memory) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath)
}
