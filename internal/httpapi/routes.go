package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spotit-game/spotit-backend/internal/registry"
	"github.com/spotit-game/spotit-backend/internal/ws"
)

func SetupRoutes(reg *registry.Registry, log *zap.Logger, originPatterns []string) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/stats", Stats(reg))
	r.Get("/ws", ws.Handler(reg, log, originPatterns))
	return r
}
