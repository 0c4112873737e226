package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "blinkchat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a chi router with all application routes.
func NewRouter(conversationHandler *ConversationHandler, sessionHandler *SessionHandler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Swagger UI for the generated API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Health check endpoint for liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout so client connections
		// cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/conversations", conversationHandler.ListConversations)
			r.Post("/conversations", conversationHandler.CreateConversation)
			r.Post("/conversations/delete-all", conversationHandler.DeleteAllConversations)
			r.Post("/conversations/restore-all", conversationHandler.RestoreAllConversations)
			r.Get("/conversations/{conversationID}", conversationHandler.GetConversation)
			r.Delete("/conversations/{conversationID}", conversationHandler.DeleteConversation)
			r.Post("/conversations/{conversationID}/archive", conversationHandler.SetArchived)
			r.Get("/conversations/{conversationID}/messages", conversationHandler.ListMessages)
			r.Post("/conversations/{conversationID}/messages/{messageID}/reactions", conversationHandler.ToggleReaction)
		})

		// Websocket routes hold their connection open for the whole session
		// and must not have a timeout.
		r.Group(func(r chi.Router) {
			r.Get("/chat/ws", sessionHandler.HandleSession)
			r.Get("/conversations/ws", sessionHandler.HandleConversationFeed)
		})
	})

	return r
}
