package hotels

import "context"

// RepositoryPort abstracts hotel persistence.
type RepositoryPort interface {
	ListActive(ctx context.Context) ([]Hotel, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Hotel, error)
	Find(ctx context.Context, id int64) (*Hotel, error)
}
