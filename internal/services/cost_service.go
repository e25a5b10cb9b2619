package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"costmanager/internal/core"
)

// UserDirectory is the external user-existence lookup consulted before a
// cost entry is accepted.
type UserDirectory interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

// CostWriter persists validated cost entries.
type CostWriter interface {
	CreateCost(ctx context.Context, c core.Cost) error
}

// AddCostInput carries the raw fields of an add-cost request. Sum is nil
// when the client omitted the field; Date is empty when the server's
// current time should be used.
type AddCostInput struct {
	UserID      int64
	Description string
	Category    string
	Sum         *core.Amount
	Date        string
}

// CostService validates and normalizes new cost entries before handing
// them to the record store. Its no-past-date rule is what keeps cached
// past-month reports permanently valid.
type CostService struct {
	users UserDirectory
	costs CostWriter
	now   func() time.Time
}

// CostOption configures a CostService.
type CostOption func(*CostService)

// WithCostClock overrides the service's notion of the current time.
func WithCostClock(now func() time.Time) CostOption {
	return func(s *CostService) {
		s.now = now
	}
}

func NewCostService(users UserDirectory, costs CostWriter, opts ...CostOption) *CostService {
	s := &CostService{
		users: users,
		costs: costs,
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add validates the input and persists a new cost entry. Each check
// short-circuits: missing fields, then unknown user, then a date before
// today's local midnight. Year, month and day are derived exactly once
// from the effective date.
func (s *CostService) Add(ctx context.Context, in AddCostInput) (core.Cost, error) {
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Category) == "" ||
		in.UserID == 0 || in.Sum == nil {
		return core.Cost{}, core.ErrMissingFields
	}

	exists, err := s.users.UserExists(ctx, in.UserID)
	if err != nil {
		return core.Cost{}, fmt.Errorf("look up user %d: %w", in.UserID, err)
	}
	if !exists {
		return core.Cost{}, core.ErrUserUnknown
	}

	now := s.now()
	effective := now
	if in.Date != "" {
		effective, err = core.ParseDate(in.Date)
		if err != nil {
			return core.Cost{}, err
		}
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if effective.Before(midnight) {
		return core.Cost{}, core.ErrPastDate
	}

	cost := core.Cost{
		UserID:      in.UserID,
		Description: strings.TrimSpace(in.Description),
		Category:    core.Category(in.Category),
		Sum:         *in.Sum,
		Year:        effective.Year(),
		Month:       int(effective.Month()),
		Day:         effective.Day(),
	}
	if err := cost.Validate(); err != nil {
		return core.Cost{}, err
	}

	if err := s.costs.CreateCost(ctx, cost); err != nil {
		return core.Cost{}, fmt.Errorf("persist cost: %w", err)
	}

	slog.InfoContext(ctx, "Cost accepted",
		"user_id", cost.UserID,
		"category", cost.Category,
		"year", cost.Year,
		"month", cost.Month,
		"day", cost.Day)
	return cost, nil
}
