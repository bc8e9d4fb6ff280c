package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"budgetwise/internal/core"
	"budgetwise/internal/log"
	"budgetwise/internal/view"
)

// pageData is what every full-page template receives. Page holds the view
// model of the page itself.
type pageData struct {
	Title      string
	Path       string
	Nav        []view.NavItem
	Categories []core.Category
	Page       any
}

func (s *Server) page(path, title string, model any) pageData {
	return pageData{
		Title:      title,
		Path:       path,
		Nav:        view.Navigation(path),
		Categories: s.snapshot.Categories,
		Page:       model,
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	model := s.dashboards.GetOrCompute("dashboard", func() view.Dashboard {
		return view.BuildDashboard(s.snapshot)
	})
	s.render(w, r, http.StatusOK, "dashboard_page", s.page("/", "Dashboard", model))
}

// handleExpenses serves the filtered transaction list on GET and accepts
// the add-expense dialog on POST. An htmx GET receives only the list
// fragment so the filter bar keeps focus.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateExpense(w, r)
		return
	case http.MethodGet, http.MethodHead:
	default:
		MethodNotAllowedError("GET, HEAD, POST").Write(w)
		return
	}

	filter := ParseExpenseFilter(r.URL.Query())
	key := filter.Query + "\x00" + filter.Category()
	model := s.expenses.GetOrCompute(key, func() view.Expenses {
		return view.BuildExpenses(s.snapshot, filter)
	})

	if IsHTMX(r) {
		s.render(w, r, http.StatusOK, "expense_list", model)
		return
	}
	s.render(w, r, http.StatusOK, "expenses_page", s.page("/expenses", "Expenses", model))
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	model := s.budgets.GetOrCompute("budgets", func() view.Budgets {
		return view.BuildBudgets(s.snapshot)
	})
	s.render(w, r, http.StatusOK, "budgets_page", s.page("/budgets", "Budgets", model))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.render(w, r, http.StatusOK, "analytics_page", s.page("/analytics", "Analytics", s.analyticsModel()))
}

// handleAnalyticsData exposes the chart series as JSON for client-side
// charting.
func (s *Server) handleAnalyticsData(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(s.analyticsModel()); err != nil {
		s.structured.LogError(r.Context(), "Analytics encoding failed", err,
			log.ComponentHTTP, log.OpRender, log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, ""))
	}
}

func (s *Server) analyticsModel() view.Analytics {
	return s.analytics.GetOrCompute("analytics", func() view.Analytics {
		return view.BuildAnalytics(s.snapshot)
	})
}

// render executes a named template into a buffer first, so a template
// failure still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldComponent, log.ComponentTemplate)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.structured.LogError(r.Context(), "Template execution failed", err,
			log.ComponentTemplate, log.OpRender, log.NewFields().With(log.FieldPage, name))
		InternalServerError("Failed to render page").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}
