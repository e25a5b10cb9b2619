package core

import (
	"strings"
	"time"
)

const (
	CategoryFood      Category = "food"
	CategoryHealth    Category = "health"
	CategoryHousing   Category = "housing"
	CategorySports    Category = "sports"
	CategoryEducation Category = "education"
)

type (
	// Category is one of the five fixed cost categories.
	Category string

	// Cost is a single cost entry owned by one user. Year, month and day
	// are derived once from the effective date at ingestion time and are
	// never recomputed afterwards.
	Cost struct {
		UserID      int64
		Description string
		Category    Category
		Sum         Amount
		Year        int
		Month       int
		Day         int
	}

	// User is an application-level user record. The ID is the numeric id
	// supplied by the client, not a storage row id.
	User struct {
		ID        int64
		FirstName string
		LastName  string
		Birthday  time.Time
	}

	// AccessLog is one audit record written after a request completes.
	AccessLog struct {
		Method    string
		URL       string
		Status    int
		Timestamp time.Time
	}
)

// Categories returns the five categories in report bucket order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryHealth,
		CategoryHousing,
		CategorySports,
		CategoryEducation,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryHealth, CategoryHousing, CategorySports, CategoryEducation:
		return true
	}
	return false
}

func (c Cost) Validate() error {
	if c.UserID <= 0 {
		return ErrInvalidUserID
	}
	if len(strings.TrimSpace(c.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(c.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !c.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := c.Sum.Validate(); err != nil {
		return err
	}
	if c.Year < 1 {
		return ErrInvalidYear
	}
	if c.Month < 1 || c.Month > 12 {
		return ErrInvalidMonth
	}
	if c.Day < 1 || c.Day > 31 {
		return ErrInvalidDay
	}
	return nil
}

func (u User) Validate() error {
	if u.ID <= 0 {
		return ErrInvalidUserID
	}
	if len(strings.TrimSpace(u.FirstName)) == 0 || len(strings.TrimSpace(u.LastName)) == 0 {
		return ErrEmptyName
	}
	return nil
}
