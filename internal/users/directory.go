package users

import (
	"context"
	"errors"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
)

// Directory adapts the user repository to the authz.Directory contract.
type Directory struct {
	repo RepositoryPort
}

// NewDirectory constructs a Directory.
func NewDirectory(repo RepositoryPort) *Directory {
	return &Directory{repo: repo}
}

// FindActive returns the authorization view of an active account. A missing
// or soft-deleted account yields (nil, nil); storage failures propagate so
// callers can fail closed.
func (d *Directory) FindActive(ctx context.Context, id int64) (*authz.Identity, error) {
	u, err := d.repo.FindActive(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u.Identity(), nil
}

var _ authz.Directory = (*Directory)(nil)
