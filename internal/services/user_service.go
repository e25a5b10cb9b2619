package services

import (
	"context"
	"fmt"

	"costmanager/internal/core"
)

// UserStore covers the user CRUD surface of the record store.
type UserStore interface {
	CreateUser(ctx context.Context, u core.User) error
	UserByID(ctx context.Context, id int64) (*core.User, error)
	ListUsers(ctx context.Context) ([]core.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

// CostTotaler sums a user's cost entries for the detail endpoint.
type CostTotaler interface {
	CostTotal(ctx context.Context, userID int64) (core.Amount, error)
}

// UserDetails is a user record together with the total of their costs.
type UserDetails struct {
	User  core.User
	Total core.Amount
}

type UserService struct {
	store  UserStore
	totals CostTotaler
}

func NewUserService(store UserStore, totals CostTotaler) *UserService {
	return &UserService{store: store, totals: totals}
}

func (s *UserService) Create(ctx context.Context, u core.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	exists, err := s.store.UserExists(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("look up user %d: %w", u.ID, err)
	}
	if exists {
		return core.ErrUserExists
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Get returns the user and the sum of all their cost entries.
func (s *UserService) Get(ctx context.Context, id int64) (UserDetails, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		return UserDetails{}, fmt.Errorf("load user %d: %w", id, err)
	}
	if user == nil {
		return UserDetails{}, core.ErrUserNotFound
	}

	total, err := s.totals.CostTotal(ctx, id)
	if err != nil {
		return UserDetails{}, fmt.Errorf("total costs for user %d: %w", id, err)
	}
	return UserDetails{User: *user, Total: total}, nil
}

func (s *UserService) List(ctx context.Context) ([]core.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
