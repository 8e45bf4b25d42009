package user

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 7

// Validation errors for registration.
var (
	ErrPasswordTooShort = errors.New("password does not fulfill the minimum requirements")
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	ErrUsernameTaken    = errors.New("username already exists")
)

// Service encapsulates user registration and lookup.
type Service struct {
	users Repository
}

// NewService creates a user Service backed by the given repository.
func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Register validates the credentials, hashes the password, and creates the
// user together with its empty cart. All validation happens before any write.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	// Cheap duplicate check up front; the unique index on username backstops
	// the lookup-then-insert race.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateWithCart(ctx, u, uuid.New().String()); err != nil {
		return nil, errors.Wrap(err, "create user")
	}

	return u, nil
}

// FindByID returns the user with the given id, or ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	return s.users.FindByID(ctx, id)
}

// FindByUsername returns the user with the given username, or ErrNotFound.
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.users.FindByUsername(ctx, username)
}
