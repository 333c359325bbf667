package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive unlock-simulator API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		joined, err := latestJoined(ctx, st)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: newRouter(joined),
		}

		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(cmd.Context())
		}()

		zap.L().Info("simulator API listening",
			zap.Int("port", cfg.Server.Port),
			zap.Int("municipalities", len(joined)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

// newRouter builds the API over an immutable snapshot of the joined table.
func newRouter(joined []model.Joined) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeAPIJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/municipalities", func(w http.ResponseWriter, req *http.Request) {
		writeAPIJSON(w, http.StatusOK, joined)
	})

	r.Get("/api/simulate", func(w http.ResponseWriter, req *http.Request) {
		u, err := strconv.ParseFloat(req.URL.Query().Get("u"), 64)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "query parameter u must be a number in [0,1]")
			return
		}

		alpha := 1.4
		if raw := req.URL.Query().Get("alpha"); raw != "" {
			alpha, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				writeAPIError(w, http.StatusBadRequest, "query parameter alpha must be a positive number")
				return
			}
		}

		res, err := friction.Simulate(joined, friction.Scenario{UnlockFraction: u, Alpha: alpha})
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeAPIJSON(w, http.StatusOK, map[string]any{
			"unlock_fraction":           u,
			"alpha":                     alpha,
			"national":                  res.National,
			"national_price_change_pct": res.NationalPrice,
			"municipalities":            res.Municipalities,
		})
	})

	return r
}

func writeAPIJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeAPIJSON(w, status, map[string]string{"error": msg})
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
