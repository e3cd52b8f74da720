package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, branch Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
	Update(ctx context.Context, req UpdateBranchRequest) error
	Delete(ctx context.Context, id string) error

	// ReplaceAll swaps the entire local registry for a remote snapshot.
	// Used by the sync coordinator; last pull wins.
	ReplaceAll(ctx context.Context, branches []Branch) error
}
