package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/redboys/portal/internal/auth"
	"github.com/redboys/portal/internal/budgets"
	"github.com/redboys/portal/internal/events"
	"github.com/redboys/portal/internal/members"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("RedBoys@123"), bcrypt.MinCost)
	assert.NoError(t, err)

	authService := auth.NewService(auth.NewJWTManager("test-secret"), "admin", string(hash))
	authHandler := auth.NewHandler(authService, RespondJSON, RespondError)

	memberService := members.NewService(&members.MockMemberRepository{})
	memberHandler := members.NewHandler(memberService, RespondJSON, RespondError)

	budgetService := budgets.NewService(&budgets.MockBudgetRepository{})
	budgetHandler := budgets.NewHandler(budgetService, RespondJSON, RespondError)

	eventService := events.NewService(&events.MockEventRepository{}, budgetService)
	eventHandler := events.NewHandler(eventService, RespondJSON, RespondError)

	srv := New(
		authHandler,
		authService,
		memberHandler,
		eventHandler,
		budgetHandler,
		memberService,
		eventService,
		budgetService,
		nil,
	)
	srv.RegisterRoutes()
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var status map[string]string
	err := json.NewDecoder(res.Body).Decode(&status)
	assert.NoError(t, err)
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "disconnected", status["database"])
}

func TestUnknownPathReturnsJSON404(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var response map[string]string
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Path not found", response["message"])
}

func TestResetRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}
