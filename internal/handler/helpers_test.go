package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/handler"
	"dgiconsole/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSession(role domain.Role) *domain.Session {
	return &domain.Session{UserID: "user-1", Role: role, Token: "tok"}
}

// newTestContext builds a gin context for a handler call. A nil session leaves
// the request unauthenticated.
func newTestContext(method, path string, body interface{}, sess *domain.Session, id string) (*gin.Context, *httptest.ResponseRecorder) {
	var buf *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewReader(raw)
	} else {
		buf = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, buf)
	c.Request.Header.Set("Content-Type", "application/json")
	if sess != nil {
		c.Set(middleware.ContextKeySession, sess)
	}
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
