package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"budgetwise/internal/core"
	"budgetwise/internal/log"
)

// ExpenseService accepts drafts from the add-expense dialog. Drafts are
// logged and dropped: the dataset is read-only, so nothing is stored.
type ExpenseService struct {
	logger    *log.StructuredLogger
	newID     func() string
	submitted atomic.Int64
}

func NewExpenseService(logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExpenseService{
		logger: log.NewStructuredLogger(logger),
		newID:  func() string { return uuid.NewString() },
	}
}

// SubmitDraft validates the draft, assigns it an id and logs it. The
// returned id identifies the log record only.
func (s *ExpenseService) SubmitDraft(ctx context.Context, d core.ExpenseDraft) (string, error) {
	if err := d.Validate(); err != nil {
		return "", fmt.Errorf("submit draft: %w", err)
	}
	if d.ID == "" {
		d.ID = s.newID()
	}
	s.submitted.Add(1)
	s.logger.LogDraftSubmitted(ctx, d.ID, d.Description, core.Cents(d.Amount), d.CategoryID)
	return d.ID, nil
}

// Submitted is the number of drafts accepted since start.
func (s *ExpenseService) Submitted() int64 {
	return s.submitted.Load()
}
