package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"listingbot/config"
)

const testAPIKey = "K"

type serverFixture struct {
	server  *Server
	store   *MockStore
	discord *MockDiscord
	auth    *MockTicketAuth
}

func newTestServer(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockStore := new(MockStore)
	mockDiscord := new(MockDiscord)
	mockAuth := new(MockTicketAuth)

	cfg := &config.Config{
		APIKey:       testAPIKey,
		BotName:      "listing-bot",
		TemplatesDir: t.TempDir(),
		Environment:  "test",
	}

	server := NewServer(cfg, mockStore, mockDiscord, func(clientID int64) TicketAuth {
		return mockAuth
	})

	return &serverFixture{
		server:  server,
		store:   mockStore,
		discord: mockDiscord,
		auth:    mockAuth,
	}
}

func (f *serverFixture) request(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	f.server.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
