package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// Update replaces the stored user after applying fn to a copy of it.
	Update(ctx context.Context, id string, fn func(u *User) error) (*User, error)
}
