package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)

	// GetByNationalID looks up by the natural key used for login and
	// duplicate prevention.
	GetByNationalID(ctx context.Context, nationalID string) (User, error)

	// GetByDeviceID finds whichever account currently holds the device
	// token, if any.
	GetByDeviceID(ctx context.Context, deviceID string) (User, error)

	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	Delete(ctx context.Context, id string) error

	// BindDevice sets the device token on an unbound account.
	BindDevice(ctx context.Context, id string, deviceID string) error

	// ClearDevice is the admin reset: RegisteredBound -> RegisteredUnbound.
	ClearDevice(ctx context.Context, id string) error

	ReplaceAll(ctx context.Context, users []User) error
}
