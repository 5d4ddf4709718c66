package main

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/config"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/pkg/api"
)

type routerDeps struct {
	cfg      *config.Config
	tabs     api.TabServiceHandler
	expenses api.ExpenseServiceHandler
	metrics  *metrics.Metrics
}

func newRouter(deps routerDeps) http.Handler {
	// Auth runs first so the logging interceptor sees the caller.
	authInterceptor := middleware.OptionalAuth(nil)
	if deps.cfg.AuthEnabled() {
		authInterceptor = middleware.RequireAuth(auth.NewJWTManager(deps.cfg.JWTSecret, deps.cfg.TokenTTL))
	}
	interceptors := connect.WithInterceptors(
		authInterceptor,
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(deps.metrics),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)
	r.Use(cors)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", deps.metrics.Handler())

	tabPath, tabHandler := api.NewTabServiceHandler(deps.tabs, interceptors)
	r.Mount(tabPath, tabHandler)

	expensePath, expenseHandler := api.NewExpenseServiceHandler(deps.expenses, interceptors)
	r.Mount(expensePath, expenseHandler)

	return r
}

// requestLogger logs all incoming requests
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimw.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// cors adds CORS headers for browser access
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
