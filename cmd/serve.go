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
	"golang.org/x/sync/errgroup"

	"github.com/honei/prospect-cli/internal/history"
	"github.com/honei/prospect-cli/internal/insight"
	"github.com/honei/prospect-cli/internal/model"
	"github.com/honei/prospect-cli/internal/osint"
	"github.com/honei/prospect-cli/pkg/abstract"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the research front end",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider, err := initProvider()
		if err != nil {
			return err
		}

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		var verifier abstract.Client
		if cfg.Abstract.Key != "" {
			verifier = abstract.NewClient(cfg.Abstract.Key, abstract.WithBaseURL(cfg.Abstract.BaseURL))
		}

		api := &apiServer{
			fetcher:  osint.NewFetcher(provider),
			store:    st,
			verifier: verifier,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.routes(),
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

// apiServer carries the handler dependencies.
type apiServer struct {
	fetcher  *osint.Fetcher
	store    *history.Store
	verifier abstract.Client
}

func (s *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/business-profile", s.handleResearch)
	r.Post("/api/verify-email", s.handleVerify)
	r.Get("/api/history", s.handleHistory)

	return r
}

func (s *apiServer) handleResearch(w http.ResponseWriter, req *http.Request) {
	var body struct {
		BusinessName string `json:"businessName"`
		City         string `json:"city"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.BusinessName == "" || body.City == "" {
		writeError(w, http.StatusBadRequest, "businessName and city are required")
		return
	}

	profile, err := s.fetcher.Fetch(req.Context(), body.BusinessName, body.City)
	if err != nil {
		status := http.StatusBadGateway
		if osint.IsMalformed(err) || osint.IsEmptyResponse(err) {
			status = http.StatusUnprocessableEntity
		}
		zap.L().Error("research request failed",
			zap.String("business", body.BusinessName),
			zap.Error(err),
		)
		writeError(w, status, err.Error())
		return
	}

	if err := s.store.Upsert(req.Context(), *profile); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Profile  *model.BusinessProfile `json:"profile"`
		Insights insight.SubScores      `json:"insights"`
		Angle    string                 `json:"angle"`
		NextStep string                 `json:"nextStep"`
	}{
		Profile:  profile,
		Insights: insight.DeriveSubScores(profile),
		Angle:    insight.OutreachAngle(profile),
		NextStep: insight.NextStep(profile.HoneiAnalysis.FitScore),
	})
}

func (s *apiServer) handleVerify(w http.ResponseWriter, req *http.Request) {
	if s.verifier == nil {
		writeError(w, http.StatusServiceUnavailable, "email verification is not configured")
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	v, err := s.verifier.Verify(req.Context(), body.Email)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *apiServer) handleHistory(w http.ResponseWriter, req *http.Request) {
	status := req.URL.Query().Get("status")
	if status != "" && !model.ValidCRMStatus(status) {
		writeError(w, http.StatusBadRequest, "unknown CRM status")
		return
	}

	entries := s.store.List(history.Filter{
		CRMStatus: model.CRMStatus(status),
		City:      req.URL.Query().Get("city"),
	})
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
