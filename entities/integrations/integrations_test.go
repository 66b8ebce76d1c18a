package integrations

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRDStationAuthorizeURL(t *testing.T) {
	handler := NewHandler("https://app.example.com/", "client-1", zap.NewNop().Sugar())

	parsed, err := url.Parse(handler.RDStationAuthorizeURL("st-1"))
	require.NoError(t, err)

	assert.Equal(t, "api.rd.services", parsed.Host)
	assert.Equal(t, "client-1", parsed.Query().Get("client_id"))
	assert.Equal(t, "https://app.example.com/integrations/rdstation/callback", parsed.Query().Get("redirect_uri"))
	assert.Equal(t, "st-1", parsed.Query().Get("state"))
}

func TestRDStationAuthorizeWithoutConfig(t *testing.T) {
	handler := NewHandler("https://app.example.com", "", zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	handler.RDStationAuthorize(rec, httptest.NewRequest(http.MethodGet, "/v1/integrations/rdstation/authorize", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
