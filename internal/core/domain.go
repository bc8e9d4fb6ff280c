package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Monthly Period = "monthly"
	Weekly  Period = "weekly"
)

type (
	// Period is the span a budget ceiling applies to. It is informational
	// only; no derivation reads it.
	Period string

	Date struct {
		time.Time
	}

	Category struct {
		ID    string `yaml:"id" json:"id"`
		Name  string `yaml:"name" json:"name"`
		Color string `yaml:"color" json:"color"` // hex, e.g. #3B82F6
		Icon  string `yaml:"icon" json:"icon"`
	}

	Transaction struct {
		ID          string
		Date        Date
		Amount      decimal.Decimal
		Description string
		CategoryID  string // not checked against the category set
	}

	Budget struct {
		ID         string
		CategoryID string
		Amount     decimal.Decimal
		Period     Period
	}

	// MonthlyTotal is one point of the spending trend.
	MonthlyTotal struct {
		Year   int
		Month  time.Month
		Amount decimal.Decimal
	}

	// ExpenseDraft is what the add-expense dialog produces on submit.
	ExpenseDraft struct {
		ID          string
		Date        Date
		Amount      decimal.Decimal
		Description string
		CategoryID  string
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyID          = errors.New("empty id")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidPeriod    = errors.New("invalid period")
)

// NewDate builds a calendar date in local time.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (p Period) Valid() bool {
	switch p {
	case Monthly, Weekly:
		return true
	default:
		return false
	}
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyID
	}
	return nil
}

// Validate checks the shape of a single record. It does not check that
// CategoryID resolves.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

func (e ExpenseDraft) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrEmptyCategory
	}
	return nil
}
