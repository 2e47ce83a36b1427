package ports

import "context"

// AccountService defines the signup and login use cases.
type AccountService interface {
	Signup(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
}
