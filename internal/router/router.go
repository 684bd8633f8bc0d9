package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"doctrone-backend/internal/config"
	"doctrone-backend/internal/handlers"
	"doctrone-backend/internal/middleware"
	"doctrone-backend/internal/websocket"
)

const slowRequest = 5 * time.Second

// New wires the HTTP surface. recordsHandler, jwtAuth, limiter and wsHub are
// optional; a nil value leaves that feature off.
func New(
	chatVariant string,
	chatHandler *handlers.ChatHandler,
	recordsHandler *handlers.RecordsHandler,
	jwtAuth *middleware.JWTAuth,
	limiter *middleware.RateLimiter,
	wsHub *websocket.Hub,
	frontendURL string,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger, slowRequest))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		if chatVariant == config.VariantSimple {
			r.Post("/chat", chatHandler.SimpleChat)
			return
		}

		if jwtAuth != nil {
			r.Use(jwtAuth.Middleware)
		}
		r.Post("/new_chat", chatHandler.NewChat)
		r.Post("/chat", chatHandler.Chat)
		r.Get("/users/{userID}/chats", chatHandler.ListChats)
		r.Get("/chats/{chatID}/messages", chatHandler.ListMessages)

		if recordsHandler != nil {
			r.Post("/users/{userID}/folders", recordsHandler.CreateFolder)
			r.Get("/users/{userID}/folders", recordsHandler.ListFolders)
			r.Get("/users/{userID}/prescriptions", recordsHandler.ListPrescriptions)
		}
	})

	if wsHub != nil {
		r.Get("/ws", wsHub.HandleWebSocket)
	}

	return r
}
