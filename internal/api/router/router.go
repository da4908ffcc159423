package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agentica-labs/widget-backend/internal/conversation"
	httpmiddleware "github.com/agentica-labs/widget-backend/internal/http/middleware"
	"github.com/agentica-labs/widget-backend/internal/leads"
	"github.com/agentica-labs/widget-backend/internal/webchat"
	"github.com/agentica-labs/widget-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *conversation.Handler
	LeadsHandler       *leads.Handler
	WebChatHandler     *webchat.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.ChatHandler.Health)

	r.Route("/chat", func(r chi.Router) {
		r.Post("/", cfg.ChatHandler.Chat)
		r.Get("/history", cfg.ChatHandler.History)
	})

	r.Post("/lead", cfg.LeadsHandler.CreateLead)

	if cfg.WebChatHandler != nil {
		r.Get("/ws", cfg.WebChatHandler.HandleWebSocket)
		r.Get("/widget.js", cfg.WebChatHandler.HandleWidgetJS)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
