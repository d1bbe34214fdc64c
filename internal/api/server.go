// Package api serves the estimator and waterfall analyzer over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/outbound-cli/internal/catalog"
	"github.com/sells-group/outbound-cli/internal/cost"
	"github.com/sells-group/outbound-cli/internal/estimate"
	"github.com/sells-group/outbound-cli/internal/waterfall"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Catalog        *catalog.Catalog
	Presets        waterfall.Presets
	Infrastructure cost.Infrastructure
	Headcount      cost.Headcount
	RateLimit      float64
	Burst          int
	AllowedOrigins []string
}

// Server holds the shared, read-only state behind the handlers.
type Server struct {
	catalog   *catalog.Catalog
	estimator *estimate.Estimator
	presets   waterfall.Presets
	infra     cost.Infrastructure
	headcount cost.Headcount
	limiter   *ClientLimiter
	origins   []string
}

// NewServer creates a Server. A nil catalog uses catalog.Default and nil
// presets use waterfall.DefaultPresets.
func NewServer(opts Options) *Server {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	presets := opts.Presets
	if presets == nil {
		presets = waterfall.DefaultPresets()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := &Server{
		catalog:   cat,
		estimator: estimate.New(cat, nil),
		presets:   presets,
		infra:     opts.Infrastructure,
		headcount: opts.Headcount,
		origins:   origins,
	}
	if opts.RateLimit > 0 {
		s.limiter = NewClientLimiter(opts.RateLimit, opts.Burst)
	}
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		r.Get("/vendors", s.handleVendors)
		r.Get("/vendors/{id}", s.handleVendor)
		r.Get("/rates", s.handleRates)
		r.Post("/estimate", s.handleEstimate)
		r.Route("/waterfalls", func(r chi.Router) {
			r.Get("/presets", s.handlePresets)
			r.Post("/analyze", s.handleAnalyze)
			r.Post("/compare", s.handleCompare)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
