// Package memory serves a snapshot decoded from a YAML (or JSON) document,
// either the embedded sample or a file on disk.
package memory

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"budgetwise/internal/core"
)

//go:embed sample.yaml
var sample []byte

type document struct {
	Categories   []core.Category `yaml:"categories"`
	Transactions []struct {
		ID          string `yaml:"id"`
		Date        string `yaml:"date"`
		Amount      string `yaml:"amount"`
		Description string `yaml:"description"`
		Category    string `yaml:"category"`
	} `yaml:"transactions"`
	Budgets []struct {
		ID       string `yaml:"id"`
		Category string `yaml:"category"`
		Amount   string `yaml:"amount"`
		Period   string `yaml:"period"`
	} `yaml:"budgets"`
	Trend []struct {
		Month  string `yaml:"month"`
		Amount string `yaml:"amount"`
	} `yaml:"trend"`
}

type Store struct {
	snapshot core.Snapshot
}

func New(s core.Snapshot) *Store {
	return &Store{snapshot: s}
}

// NewEmbedded loads the bundled sample dataset.
func NewEmbedded() (*Store, error) {
	s, err := Parse(sample)
	if err != nil {
		return nil, fmt.Errorf("embedded sample: %w", err)
	}
	return New(s), nil
}

// NewFromFile loads a dataset document from path.
func NewFromFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(s), nil
}

// ReadSnapshot returns the loaded dataset.
func (s *Store) ReadSnapshot(_ context.Context) (core.Snapshot, error) {
	return s.snapshot, nil
}

// Parse decodes and validates a dataset document. Dates are calendar days
// (2006-01-02) in local time; trend months are 2006-01.
func Parse(raw []byte) (core.Snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode dataset: %w", err)
	}

	snap := core.Snapshot{Categories: doc.Categories}
	for _, t := range doc.Transactions {
		date, err := parseDay(t.Date)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("transaction %q: %w", t.ID, err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(t.Amount))
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("transaction %q: %w", t.ID, core.ErrInvalidAmount)
		}
		snap.Transactions = append(snap.Transactions, core.Transaction{
			ID:          t.ID,
			Date:        date,
			Amount:      amount,
			Description: t.Description,
			CategoryID:  t.Category,
		})
	}
	for _, b := range doc.Budgets {
		amount, err := decimal.NewFromString(strings.TrimSpace(b.Amount))
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("budget %q: %w", b.ID, core.ErrInvalidAmount)
		}
		period := core.Period(b.Period)
		if period == "" {
			period = core.Monthly
		}
		snap.Budgets = append(snap.Budgets, core.Budget{
			ID:         b.ID,
			CategoryID: b.Category,
			Amount:     amount,
			Period:     period,
		})
	}
	for _, m := range doc.Trend {
		month, err := time.ParseInLocation("2006-01", strings.TrimSpace(m.Month), time.Local)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("trend month %q: %w", m.Month, core.ErrInvalidDate)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(m.Amount))
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("trend month %q: %w", m.Month, core.ErrInvalidAmount)
		}
		snap.Trend = append(snap.Trend, core.MonthlyTotal{
			Year:   month.Year(),
			Month:  month.Month(),
			Amount: amount,
		})
	}

	if err := snap.Validate(); err != nil {
		return core.Snapshot{}, err
	}
	return snap, nil
}

func parseDay(s string) (core.Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return core.Date{}, core.ErrInvalidDate
	}
	return core.Date{Time: t}, nil
}
