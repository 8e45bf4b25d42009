package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// User is a registered customer. PasswordHash holds the bcrypt hash of the
// registration password; the raw password is never stored. Every user owns
// exactly one cart, created together with the user row.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Repository defines persistence operations for users.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// CreateWithCart inserts the user and an empty cart with the given id in
	// one transaction, so a failed registration never leaves an orphaned
	// cart behind. It fills in the server-assigned fields of u, such as
	// CreatedAt.
	CreateWithCart(ctx context.Context, u *User, cartID string) error
}
