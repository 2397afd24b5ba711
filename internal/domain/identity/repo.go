package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repository lookups when no user matches.
var ErrNotFound = errors.New("user not found")

type Repository interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByIDAndRole(ctx context.Context, id, role string) (*User, error)
	Create(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
