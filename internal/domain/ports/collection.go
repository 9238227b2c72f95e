package ports

import "context"

// CollectionManager creates and drops the vector collection backing a
// session's recall index. It is kept apart from VectorDB so passage
// operations can be mocked without collection lifecycle concerns.
type CollectionManager interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// DeleteCollection removes the collection and all its passages.
	DeleteCollection(ctx context.Context) error
}
