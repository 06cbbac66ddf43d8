package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no document exists at the path.
	ErrNotFound = errors.New("document not found")
	// ErrPreconditionFailed means the presented version token was stale:
	// another writer committed between the read and the write.
	ErrPreconditionFailed = errors.New("document version precondition failed")
)

// Document is one revision of a stored document.
type Document struct {
	Content []byte
	// Version is an opaque token identifying this revision. Pass it back
	// to Put as the write precondition.
	Version string
}

// Store is a versioned document store with optimistic-concurrency writes.
// It is the only cross-process coordination in the system: no in-process
// lock covers other writers of the same path.
type Store interface {
	// Get returns the current revision at path, or ErrNotFound.
	Get(ctx context.Context, path string) (*Document, error)

	// Put commits content to path. expectedVersion must be the Version
	// from the preceding Get, or empty when creating the document; a
	// stale token yields ErrPreconditionFailed. message is a human
	// commit description for backends that record one. Returns the new
	// revision's version token.
	Put(ctx context.Context, path string, content []byte, expectedVersion, message string) (string, error)
}
