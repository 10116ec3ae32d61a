package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/handler"
	"dgiconsole/internal/router"
	"dgiconsole/internal/service"
	"dgiconsole/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter() (*gin.Engine, *mocks.MockSessionService, *mocks.MockInvoiceService, *mocks.MockQuoteService) {
	sessions := new(mocks.MockSessionService)
	invoices := new(mocks.MockInvoiceService)
	quotes := new(mocks.MockQuoteService)
	r := router.Setup(
		zap.NewNop(),
		[]string{"http://localhost:3000"},
		sessions,
		handler.NewInvoiceHandler(invoices),
		handler.NewQuoteHandler(quotes),
		handler.NewHealthHandler(nil),
	)
	return r, sessions, invoices, quotes
}

func TestRouter_HealthIsPublic(t *testing.T) {
	r, _, _, _ := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_InvoicesRequireSession(t *testing.T) {
	r, _, invoices, _ := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	invoices.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRouter_RoutesAuthenticatedRequests(t *testing.T) {
	r, sessions, invoices, quotes := setupRouter()

	sess := &domain.Session{UserID: "u-1", Role: domain.RoleAdmin, Token: "tok"}
	sessions.On("Authenticate", "tok").Return(sess, nil)
	invoices.On("List", mock.Anything, sess).Return([]service.InvoiceView{}, nil)
	quotes.On("Get", mock.Anything, sess, int64(8)).Return(&service.QuoteView{Quote: domain.Quote{ID: 8}}, nil)

	for _, path := range []string{"/api/v1/invoices", "/api/v1/quotes/8"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
		req.Header.Set("Authorization", "Bearer tok")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
	invoices.AssertExpectations(t)
	quotes.AssertExpectations(t)
}
