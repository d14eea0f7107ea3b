package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/meetup/svc/auth"
)

const minPasswordLength = 8

// Service registers and authenticates users.
type Service struct {
	repo Repository
	cost int
	now  func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// NewService creates a user service on repo.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the input, hashes the password and creates the user.
// Validation failures are returned as a *ValidationError.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = normalizeEmail(email)

	verr := &ValidationError{}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		verr.add("email", "must be a valid email address")
	}
	if len(password) < minPasswordLength {
		verr.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if len(password) > 72 {
		verr.add("password", "must be at most 72 bytes")
	}
	if !verr.empty() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks the credentials. Unknown emails and wrong passwords
// both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Resolve implements auth.Resolver.
func (s *Service) Resolve(ctx context.Context, id string) (*auth.Principal, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errors.Join(auth.ErrPrincipalNotFound, err)
		}
		return nil, err
	}
	return u.Principal(), nil
}

// Principal projects the user into the request principal.
func (u *User) Principal() *auth.Principal {
	return &auth.Principal{ID: u.ID, Email: u.Email, Name: u.Name}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
