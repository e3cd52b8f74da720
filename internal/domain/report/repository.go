package report

import "context"

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	List(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, req UpdateAccountRequest) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, accounts []Account) error
}
