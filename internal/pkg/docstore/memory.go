package docstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Memory is an in-process Store for tests and local development. Version
// tokens are content hashes, matching the external backends' semantics.
type Memory struct {
	mu   sync.Mutex
	docs map[string]Document
}

func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]Document),
	}
}

func (m *Memory) Get(ctx context.Context, path string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		return nil, ErrNotFound
	}

	out := Document{
		Content: append([]byte(nil), doc.Content...),
		Version: doc.Version,
	}
	return &out, nil
}

func (m *Memory) Put(ctx context.Context, path string, content []byte, expectedVersion, message string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.docs[path]
	if exists && current.Version != expectedVersion {
		return "", ErrPreconditionFailed
	}
	if !exists && expectedVersion != "" {
		return "", ErrPreconditionFailed
	}

	version := contentHash(content)
	m.docs[path] = Document{
		Content: append([]byte(nil), content...),
		Version: version,
	}
	return version, nil
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
