package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/server"
	"github.com/memoryxin/battlechess/internal/services/auth"
)

// StatusSource reports the game server's live gauges
type StatusSource interface {
	Status() server.Status
}

// RouterConfig holds configuration for the ops API router
type RouterConfig struct {
	Logger      *slog.Logger
	Status      StatusSource
	AuthService *auth.Service
}

// NewRouter creates the ops API router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Recovery(cfg.Logger))
	api.Use(Logging(cfg.Logger))

	api.HandleFunc("/status", statusHandler(cfg.Status)).Methods(http.MethodGet)
	api.HandleFunc("/users/{name}", userHandler(cfg.AuthService)).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func statusHandler(source StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, source.Status())
	}
}

func userHandler(authService *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		user, err := authService.Lookup(r.Context(), name)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
