package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/eduspark/backend/internal/handler/chat"
	"github.com/eduspark/backend/internal/service/ai"
	chatService "github.com/eduspark/backend/internal/service/chat"
	"github.com/eduspark/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store *chatService.Store, generator ai.Generator) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Credentials must be allowed so the session cookie survives a
	// cross-origin frontend.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	chatHandler := chat.New(store, generator)
	chatHandler.RegisterRoutes(r)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": store.Len(),
		})
	})

	return r
}
