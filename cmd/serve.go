package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/takeoff-cli/internal/config"
	"github.com/sells-group/takeoff-cli/internal/estimate"
	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/recognize"
	"github.com/sells-group/takeoff-cli/internal/store"
)

const maxRequestBytes = 10 << 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the estimate HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		env, err := initEstimator(cfg)
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           buildRouter(env, st, cfg.Server),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// estimateRequest is the POST /estimates body.
type estimateRequest struct {
	Documents []model.Blueprint `json:"documents"`
	Save      bool              `json:"save"`
}

// estimateResponse wraps an estimate with its run id when saved.
type estimateResponse struct {
	RunID    string             `json:"run_id,omitempty"`
	Estimate *estimate.Estimate `json:"estimate"`
}

// buildRouter wires the API routes. st may be nil, in which case saving
// and run lookups answer 503.
func buildRouter(env *estimatorEnv, st store.Store, sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(api chi.Router) {
		api.Use(rateLimit(rate.NewLimiter(rate.Limit(sc.RateLimit), sc.RateBurst)))
		api.Post("/estimates", handleEstimate(env, st))
		api.Get("/runs/{id}", handleGetRun(st))
		api.Get("/runs/{id}/lines", handleRunLines(st))
	})

	return r
}

func handleEstimate(env *estimatorEnv, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req estimateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.Documents) == 0 {
			writeError(w, http.StatusBadRequest, "documents are required")
			return
		}
		for i := range req.Documents {
			if req.Documents[i].DisplayName() == "" {
				req.Documents[i].Name = fmt.Sprintf("document-%d", i+1)
			}
		}

		var runStore store.Store
		if req.Save {
			if st == nil {
				writeError(w, http.StatusServiceUnavailable, "run store not configured")
				return
			}
			runStore = st
		}

		est, runID, err := runEstimate(r.Context(), env, runStore, req.Documents)
		if err != nil {
			status := estimateErrorStatus(err)
			if status == http.StatusInternalServerError {
				zap.L().Error("estimate failed", zap.String("run_id", runID), zap.Error(err))
			}
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, estimateResponse{RunID: runID, Estimate: est})
	}
}

// estimateErrorStatus maps pipeline errors to HTTP statuses. Bad drawing
// data is the client's problem; anything else is ours.
func estimateErrorStatus(err error) int {
	switch {
	case model.IsStructural(err), errors.Is(err, recognize.ErrUnrecognizable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, estimate.ErrNoDocuments):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func handleGetRun(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeError(w, http.StatusServiceUnavailable, "run store not configured")
			return
		}
		run, err := st.GetRun(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

func handleRunLines(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeError(w, http.StatusServiceUnavailable, "run store not configured")
			return
		}
		id := chi.URLParam(r, "id")
		if _, err := st.GetRun(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		lines, err := st.ListLines(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if lines == nil {
			lines = []model.LineItem{}
		}
		writeJSON(w, http.StatusOK, lines)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	if store.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	zap.L().Error("store request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// rateLimit rejects requests once the shared token bucket is empty.
func rateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
