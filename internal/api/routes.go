package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/config"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/session"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/store"
)

func NewRouter(cfg *config.Config, sess *session.Session, oracle llm.Generator, st store.Store) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)

	handlers := NewHandlers(sess, oracle, st)
	limiter := NewRateLimiter(60, time.Minute)

	// Public endpoints
	r.Get("/health", handlers.Health)

	// API v1 routes (authenticated)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg))
		r.Use(RateLimitMiddleware(limiter))
		r.Use(JSONContentType)

		r.Post("/chat", handlers.Chat)
		r.Get("/history", handlers.History)
		r.Delete("/history", handlers.ClearHistory)
		r.Delete("/history/{index}", handlers.DeleteTurn)

		r.Post("/reflections", handlers.Reflect)
		r.Get("/reflections", handlers.Reflections)
		r.Delete("/reflections", handlers.ClearReflections)
		r.Delete("/reflections/{index}", handlers.DeleteReflection)
		r.Get("/reflections/prompt", handlers.ReflectionPrompt)

		r.Get("/insights", handlers.Insights)
		r.Get("/moods", handlers.MoodCounts)

		r.Get("/nickname", handlers.GetNickname)
		r.Put("/nickname", handlers.SetNickname)
	})

	return r
}
