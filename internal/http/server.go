package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"budgetwise/internal/backend"
	"budgetwise/internal/cache"
	"budgetwise/internal/core"
	"budgetwise/internal/log"
	"budgetwise/internal/middleware/ratelimit"
	"budgetwise/internal/middleware/security"
	"budgetwise/internal/middleware/trace"
	"budgetwise/internal/view"
	appweb "budgetwise/web"
)

// DraftSubmitter accepts expense drafts from the add-expense dialog.
type DraftSubmitter interface {
	SubmitDraft(ctx context.Context, d core.ExpenseDraft) (string, error)
}

// Options configures NewServer. Snapshot and Drafts are required.
type Options struct {
	Addr     string
	Snapshot core.Snapshot
	Drafts   DraftSubmitter
	Logger   *log.Logger

	// Ready is probed by /readyz when the snapshot source can be pinged.
	Ready backend.Pinger

	CacheSize      int
	CacheTTL       time.Duration
	RateLimit      ratelimit.Config
	TrustedProxies []string

	// Now stamps expense drafts; defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	http.Server
	templates *template.Template
	snapshot  core.Snapshot
	drafts    DraftSubmitter
	ready     backend.Pinger
	now       func() time.Time

	logger     *log.Logger
	structured *log.StructuredLogger

	dashboards *cache.LRUCache[view.Dashboard]
	expenses   *cache.LRUCache[view.Expenses]
	budgets    *cache.LRUCache[view.Budgets]
	analytics  *cache.LRUCache[view.Analytics]
	caches     *cache.Manager

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware

	appMetrics   appMetrics
	shutdownOnce sync.Once
}

type appMetrics struct {
	uptime         time.Time
	draftsAccepted atomic.Int64
	draftsRejected atomic.Int64
}

const (
	defaultCacheSize    = 64
	defaultCacheTTL     = 5 * time.Minute
	cacheSweepInterval  = 10 * time.Minute
	staticAssetMaxAge   = 3600
	readyCheckTimeout   = 5 * time.Second
	notificationMessage = "Expense saved"
)

// NewServer configures routes, templates and middleware, returning a
// ready-to-run http.Server.
func NewServer(opts Options) (*Server, error) {
	if opts.Drafts == nil {
		return nil, errors.New("http: draft submitter is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger.WithComponent(log.ComponentHTTP)
	detector := security.NewDetector()
	for _, cidr := range opts.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
	}

	s := &Server{
		snapshot:         opts.Snapshot,
		drafts:           opts.Drafts,
		ready:            opts.Ready,
		now:              opts.Now,
		logger:           logger,
		structured:       log.NewStructuredLogger(opts.Logger),
		dashboards:       cache.NewLRUCache[view.Dashboard](1, opts.CacheTTL),
		expenses:         cache.NewLRUCache[view.Expenses](opts.CacheSize, opts.CacheTTL),
		budgets:          cache.NewLRUCache[view.Budgets](1, opts.CacheTTL),
		analytics:        cache.NewLRUCache[view.Analytics](1, opts.CacheTTL),
		caches:           cache.NewManager(opts.Logger),
		rateLimiter:      ratelimit.NewLimiter(opts.RateLimit),
		securityDetector: detector,
	}
	s.appMetrics.uptime = time.Now()
	s.traceMiddleware = trace.NewMiddleware(opts.Logger, detector.ExtractClientIP)

	s.caches.Register(s.dashboards)
	s.caches.Register(s.expenses)
	s.caches.Register(s.budgets)
	s.caches.Register(s.analytics)
	s.caches.StartCleanup(cacheSweepInterval)

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.stopBackground()
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = t

	mux := http.NewServeMux()
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(staticAssetMaxAge)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/expenses", s.handleExpenses)
	mux.HandleFunc("/budgets", s.handleBudgets)
	mux.HandleFunc("/analytics", s.handleAnalytics)
	mux.HandleFunc("/analytics/data", s.handleAnalyticsData)
	mux.HandleFunc("/ui/add-expense", s.handleAddExpenseDialog)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.middleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// middleware wraps the mux, outermost first: security headers, tracing,
// request logger, probe detection and rate limiting.
func (s *Server) middleware(next http.Handler) http.Handler {
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.logger.WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
	})

	h := limit(next)
	h = s.detectSuspicious(h)
	h = log.RequestIDMiddleware(trace.RequestIDFromRequest)(h)
	h = log.Middleware(s.logger)(h)
	h = s.traceMiddleware.Middleware(h)
	return headers.Middleware(h)
}

func (s *Server) detectSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.securityDetector.DetectSuspiciousRequest(r) {
			log.FromContext(r.Context()).WithComponent(log.ComponentSecurity).WarnContext(r.Context(),
				"Suspicious request detected",
				log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldUserAgent, r.Header.Get("User-Agent"))
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.stopBackground()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) stopBackground() {
	s.caches.Stop()
	s.rateLimiter.Stop()
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{3}([0-9A-Fa-f]{3})?$`)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// swatch is the inline style for a category colour.
		"swatch": func(color string) template.CSS {
			return template.CSS("background-color: " + safeColor(color))
		},
		"pieGradient": func(slices []view.Slice) template.CSS {
			clean := make([]view.Slice, len(slices))
			copy(clean, slices)
			for i := range clean {
				clean[i].Color = safeColor(clean[i].Color)
			}
			return template.CSS("background: " + view.PieGradient(clean))
		},
		"barWidth": func(percent int) template.CSS {
			return template.CSS(fmt.Sprintf("width: %d%%", clampPercent(percent)))
		},
		"trendPolyline": view.TrendPolyline,
	}
}

// safeColor passes hex colours through and maps anything else to the
// placeholder grey, so data never reaches a style attribute unchecked.
func safeColor(color string) string {
	if hexColor.MatchString(color) {
		return color
	}
	return core.UnknownCategoryColor
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
