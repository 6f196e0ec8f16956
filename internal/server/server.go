package server

import (
	"encoding/json"
	"net/http"

	"github.com/redboys/portal/internal/auth"
	"github.com/redboys/portal/internal/budgets"
	database "github.com/redboys/portal/internal/db"
	"github.com/redboys/portal/internal/events"
	"github.com/redboys/portal/internal/members"
	"github.com/redboys/portal/internal/metrics"
)

type Server struct {
	router        *http.ServeMux
	authHandler   *auth.Handler
	authService   auth.Service
	memberHandler *members.Handler
	eventHandler  *events.Handler
	budgetHandler *budgets.Handler
	memberService members.Service
	eventService  events.Service
	budgetService budgets.Service
	dbService     *database.DBService
}

func New(
	authHandler *auth.Handler,
	authService auth.Service,
	memberHandler *members.Handler,
	eventHandler *events.Handler,
	budgetHandler *budgets.Handler,
	memberService members.Service,
	eventService events.Service,
	budgetService budgets.Service,
	dbService *database.DBService,
) *Server {
	return &Server{
		router:        http.NewServeMux(),
		authHandler:   authHandler,
		authService:   authService,
		memberHandler: memberHandler,
		eventHandler:  eventHandler,
		budgetHandler: budgetHandler,
		memberService: memberService,
		eventService:  eventService,
		budgetService: budgetService,
		dbService:     dbService,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"message": "Path not found"})
}

func (s *Server) RegisterRoutes() {
	mux := http.NewServeMux()

	// Members
	mux.Handle("GET /api/members", http.HandlerFunc(s.memberHandler.HandleList))
	mux.Handle("POST /api/members", http.HandlerFunc(s.memberHandler.HandleCreate))
	mux.Handle("PUT /api/members/{id}", http.HandlerFunc(s.memberHandler.HandleUpdate))
	mux.Handle("DELETE /api/members/{id}", http.HandlerFunc(s.memberHandler.HandleDelete))

	// Events (delete cascades the event's budget)
	mux.Handle("GET /api/events", http.HandlerFunc(s.eventHandler.HandleList))
	mux.Handle("POST /api/events", http.HandlerFunc(s.eventHandler.HandleCreate))
	mux.Handle("PUT /api/events/{id}", http.HandlerFunc(s.eventHandler.HandleUpdate))
	mux.Handle("DELETE /api/events/{id}", http.HandlerFunc(s.eventHandler.HandleDelete))

	// Budgets, keyed by the owning event
	mux.Handle("GET /api/budgets", http.HandlerFunc(s.budgetHandler.HandleList))
	mux.Handle("GET /api/budgets/{eventID}", http.HandlerFunc(s.budgetHandler.HandleGetByEvent))
	mux.Handle("PUT /api/budgets/{eventID}", http.HandlerFunc(s.budgetHandler.HandleUpsert))

	// Admin
	mux.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	mux.Handle("POST /api/admin/reset", s.authService.Middleware()(http.HandlerFunc(s.handleReset)))

	mux.Handle("GET /health", http.HandlerFunc(s.handleHealth))
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mux
}

// Router returns the registered routes. Middleware is applied by the
// composition root, not here.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	db := "disconnected"
	if s.dbService != nil && s.dbService.Health(r.Context())["status"] == "up" {
		db = "connected"
	}
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": db,
	})
}

// handleReset drops all three collections. A later state fetch against the
// emptied store re-seeds the starter data client-side.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.memberService.ResetAll(ctx); err != nil {
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.eventService.ResetAll(ctx); err != nil {
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.budgetService.ResetAll(ctx); err != nil {
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "All collections reset"})
}
