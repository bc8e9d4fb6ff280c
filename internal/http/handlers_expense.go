package http

import (
	"net/http"

	"budgetwise/internal/core"
	"budgetwise/internal/log"
	"budgetwise/internal/view"
)

// dialogData feeds the add_expense_dialog template.
type dialogData struct {
	Form       view.AddExpenseForm
	Categories []core.Category
}

// handleAddExpenseDialog opens the dialog, or closes it when close=true.
// A closed dialog renders as an empty fragment.
func (s *Server) handleAddExpenseDialog(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	var event view.FormEvent = view.DialogOpened{}
	if r.URL.Query().Get("close") == "true" {
		event = view.DialogClosed{}
	}
	form, _ := view.AddExpenseForm{}.Apply(event)
	s.render(w, r, http.StatusOK, "add_expense_dialog", dialogData{Form: form, Categories: s.snapshot.Categories})
}

// handleCreateExpense replays the posted fields through the dialog state
// and submits. Invalid input re-renders the dialog with 422; success closes
// it and fires the reset and notification triggers.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx).WithComponent(log.ComponentExpense)

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		logger.WarnContext(ctx, "Invalid expense payload",
			log.FieldOperation, log.OpParse,
			log.FieldError, err)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	var form view.AddExpenseForm
	for _, ev := range parser.ExpenseFormEvents() {
		form, _ = form.Apply(ev)
	}
	form, draft := form.Apply(view.Submitted{At: s.now()})

	if draft == nil {
		s.appMetrics.draftsRejected.Add(1)
		logger.InfoContext(ctx, "Expense draft rejected",
			log.FieldOperation, log.OpValidate,
			log.FieldCount, len(form.Errors))
		s.render(w, r, http.StatusUnprocessableEntity, "add_expense_dialog",
			dialogData{Form: form, Categories: s.snapshot.Categories})
		return
	}

	id, err := s.drafts.SubmitDraft(ctx, *draft)
	if err != nil {
		s.appMetrics.draftsRejected.Add(1)
		s.structured.LogError(ctx, "Expense draft submission failed", err,
			log.ComponentExpense, log.OpSubmit, log.NewFields().With(log.FieldDescription, draft.Description))
		UnprocessableEntityError("Could not save expense").Write(w)
		return
	}
	s.appMetrics.draftsAccepted.Add(1)

	if !IsHTMX(r) {
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
		return
	}

	NewHTMXResponse().
		TriggerExpenseDrafted(id).
		TriggerFormReset().
		TriggerDialogClose().
		TriggerSuccessNotification(notificationMessage).
		BodyHTML("").
		Write(w)
}
