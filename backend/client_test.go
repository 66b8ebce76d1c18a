package backend

import (
	"context"
	"dashboard/schemas"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, nil, zap.NewNop().Sugar())
}

func TestDoDecodesEnvelopeData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/funnels/F1", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		io.WriteString(w, `{"success":true,"data":{"id":"F1","name":"Vendas","stages":[]}}`)
	})

	funnel := schemas.Funnel{}
	ctx := WithToken(context.Background(), "Bearer abc")
	require.NoError(t, client.Do(ctx, http.MethodGet, "/funnels/F1", nil, &funnel))
	assert.Equal(t, "Vendas", funnel.Name)
}

func TestDoSuccessFalseIsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false,"message":"Etapa fixa","error":"FIXED_STAGE"}`)
	})

	err := client.Do(context.Background(), http.MethodDelete, "/stages/s1", nil, nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Etapa fixa", apiErr.UserMessage())
}

func TestDoNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success":false,"message":"Funil não encontrado"}`)
	})

	_, err := NewFunnels(client).GetOne(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestDoNonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream down")
	})

	err := client.Do(context.Background(), http.MethodGet, "/users", nil, nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.UserMessage())
}

func TestDoTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(server.URL, nil, zap.NewNop().Sugar())

	err := client.Do(context.Background(), http.MethodGet, "/funnels", nil, nil)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestInstancesAcceptBothListShapes(t *testing.T) {
	for name, body := range map[string]string{
		"instances": `{"success":true,"instances":[{"id":"i1","instanceName":"vendas"}]}`,
		"data":      `{"success":true,"data":[{"id":"i1","instanceName":"vendas"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})

			instances, err := NewInstances(client).GetAll(context.Background())
			require.NoError(t, err)
			require.Len(t, instances, 1)
			assert.Equal(t, "vendas", instances[0].Name)
		})
	}
}

func TestInstancesRejectUnknownShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"items":[]}`)
	})

	_, err := NewInstances(client).GetAll(context.Background())
	assert.Error(t, err)
}

func TestUploadImageSendsDataURI(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `data:image/png;base64,iVBO`)
		io.WriteString(w, `{"success":true,"data":{"url":"https://cdn/logo.png"}}`)
	})

	url, err := NewSystemConfig(client).UploadImage(context.Background(), "logo", schemas.ImageUpload{
		FileName:    "logo.png",
		ContentType: "image/png",
		Content:     []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/logo.png", url)
}

func TestStatusFor(t *testing.T) {
	status, msg := StatusFor(&APIError{Status: http.StatusConflict, Message: "Lead já está no fluxo"}, "Erro")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Lead já está no fluxo", msg)

	status, msg = StatusFor(&APIError{Status: http.StatusNotFound}, "Erro")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Erro", msg)

	status, _ = StatusFor(ErrTransport, "Erro")
	assert.Equal(t, http.StatusBadGateway, status)

	status, _ = StatusFor(errors.New("boom"), "Erro")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestTokenSourceIsReadOnEveryCall(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":null}`))
	})

	current := "Bearer A"
	ctx := WithTokenSource(context.Background(), func() string { return current })

	require.NoError(t, client.Do(ctx, http.MethodGet, "/funnels/F1", nil, nil))
	current = "Bearer B"
	require.NoError(t, client.Do(ctx, http.MethodGet, "/funnels/F1", nil, nil))

	assert.Equal(t, []string{"Bearer A", "Bearer B"}, seen)
	assert.Equal(t, "Bearer C", TokenFrom(WithToken(context.Background(), "Bearer C")))
}
