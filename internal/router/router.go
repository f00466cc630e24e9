package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jacobxo0/AIforsikring-sub002/internal/handler"
	"github.com/jacobxo0/AIforsikring-sub002/internal/middleware"
	"go.uber.org/zap"
)

func New(chatHandler *handler.ChatHandler, chatPage http.Handler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handler.Health)
	r.Method(http.MethodGet, "/", chatPage)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}
