package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetwise/internal/core"
	"budgetwise/internal/log"
)

func newTestService(buf *bytes.Buffer) *ExpenseService {
	return NewExpenseService(log.New(log.Config{Format: log.FormatJSON, Output: buf}))
}

func TestSubmitDraft(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(&buf)

	id, err := svc.SubmitDraft(context.Background(), core.ExpenseDraft{
		Date:        core.NewDate(2023, time.July, 13),
		Amount:      decimal.RequireFromString("12.34"),
		Description: "Coffee beans",
		CategoryID:  "food",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err, "id should be a uuid")
	assert.EqualValues(t, 1, svc.Submitted())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, id, rec[log.FieldDraftID])
	assert.Equal(t, "Coffee beans", rec[log.FieldDescription])
	assert.EqualValues(t, 1234, rec[log.FieldAmountCents])
	assert.Equal(t, "food", rec[log.FieldCategory])
	assert.Equal(t, log.ComponentExpense, rec[log.FieldComponent])
}

func TestSubmitDraftKeepsGivenID(t *testing.T) {
	svc := newTestService(&bytes.Buffer{})

	id, err := svc.SubmitDraft(context.Background(), core.ExpenseDraft{
		ID:          "fixed",
		Date:        core.NewDate(2023, time.July, 13),
		Description: "Tea",
		CategoryID:  "food",
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestSubmitDraftRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(&buf)

	_, err := svc.SubmitDraft(context.Background(), core.ExpenseDraft{
		Date:       core.NewDate(2023, time.July, 13),
		CategoryID: "food",
	})
	assert.True(t, errors.Is(err, core.ErrEmptyDescription))
	assert.Zero(t, svc.Submitted())
	assert.Empty(t, buf.String())
}

func TestNewExpenseServiceNilLogger(t *testing.T) {
	assert.NotNil(t, NewExpenseService(nil))
}
