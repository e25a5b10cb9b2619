package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validCost() Cost {
	return Cost{
		UserID:      123123,
		Description: "groceries",
		Category:    CategoryFood,
		Sum:         Amount{Cents: 1250},
		Year:        2026,
		Month:       9,
		Day:         1,
	}
}

func TestCostValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Cost)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Cost) {}},
		{name: "zero user id", mutate: func(c *Cost) { c.UserID = 0 }, wantErr: ErrInvalidUserID},
		{name: "negative user id", mutate: func(c *Cost) { c.UserID = -1 }, wantErr: ErrInvalidUserID},
		{name: "blank description", mutate: func(c *Cost) { c.Description = "   " }, wantErr: ErrEmptyDescription},
		{name: "description too long", mutate: func(c *Cost) { c.Description = strings.Repeat("x", 201) }, wantErr: ErrDescriptionTooLong},
		{name: "unknown category", mutate: func(c *Cost) { c.Category = "misc" }, wantErr: ErrInvalidCategory},
		{name: "zero sum", mutate: func(c *Cost) { c.Sum = Amount{} }, wantErr: ErrInvalidAmount},
		{name: "zero year", mutate: func(c *Cost) { c.Year = 0 }, wantErr: ErrInvalidYear},
		{name: "month too high", mutate: func(c *Cost) { c.Month = 13 }, wantErr: ErrInvalidMonth},
		{name: "zero month", mutate: func(c *Cost) { c.Month = 0 }, wantErr: ErrInvalidMonth},
		{name: "day too high", mutate: func(c *Cost) { c.Day = 32 }, wantErr: ErrInvalidDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCost()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %s should be valid", c)
		}
	}
	for _, c := range []Category{"", "misc", "Food", "FOOD"} {
		if c.Valid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{ID: 123123, FirstName: "mosh", LastName: "israeli"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}

	u := valid
	u.ID = 0
	if err := u.Validate(); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("zero id error = %v, want ErrInvalidUserID", err)
	}

	u = valid
	u.FirstName = " "
	if err := u.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank first name error = %v, want ErrEmptyName", err)
	}

	u = valid
	u.LastName = ""
	if err := u.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty last name error = %v, want ErrEmptyName", err)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-09-14")
	if err != nil {
		t.Fatalf("bare date: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.September || got.Day() != 14 {
		t.Errorf("bare date = %v", got)
	}
	if got.Location() != time.Local {
		t.Errorf("bare date location = %v, want local", got.Location())
	}

	got, err = ParseDate("2026-09-14T10:30:00Z")
	if err != nil {
		t.Fatalf("RFC3339: %v", err)
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("RFC3339 time = %v", got)
	}

	for _, bad := range []string{"", "14/09/2026", "2026-13-01", "not a date"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}
