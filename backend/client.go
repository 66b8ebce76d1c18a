// Package backend holds the HTTP transport to the dashboard REST API and one
// stateless adapter per resource. Every response follows the envelope
// {success, data, message, error}.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DEFAULT_TIMEOUT = 20 * time.Second

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// APIError é uma resposta do backend com status de erro ou success=false.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Detail
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend respondeu %d: %s", e.Status, msg)
}

// UserMessage é o texto que pode ir direto para o toast.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Detail
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ErrTransport marca falhas de rede (timeout, conexão recusada).
var ErrTransport = errors.New("falha de comunicação com o backend")

type tokenKey struct{}

type tokenSourceKey struct{}

// WithToken guarda o Authorization recebido para ser repassado ao backend.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// WithTokenSource é para contextos longos (assinaturas ao vivo): o token é
// lido de source a cada chamada e pode mudar enquanto o contexto vive.
func WithTokenSource(ctx context.Context, source func() string) context.Context {
	return context.WithValue(ctx, tokenSourceKey{}, source)
}

// TokenFrom devolve o Authorization guardado por WithTokenSource ou WithToken.
func TokenFrom(ctx context.Context) string {
	if source, ok := ctx.Value(tokenSourceKey{}).(func() string); ok {
		return source()
	}
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DEFAULT_TIMEOUT}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Do envia body como JSON e decodifica o campo data do envelope em out (se não for nil).
func (c *Client) Do(ctx context.Context, method, path string, body any, out any) error {
	raw, err := c.DoRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decodificando resposta de %s %s: %w", method, path, err)
	}
	return nil
}

// DoRaw devolve o campo data sem decodificar.
func (c *Client) DoRaw(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	_, env, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// DoFull devolve o corpo inteiro da resposta, para recursos que não seguem o envelope à risca.
func (c *Client) DoFull(ctx context.Context, method, path string, body any) ([]byte, error) {
	respBody, _, err := c.send(ctx, method, path, body)
	return respBody, err
}

func (c *Client) send(ctx context.Context, method, path string, body any) ([]byte, envelope, error) {
	env := envelope{}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, env, fmt.Errorf("serializando payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, env, fmt.Errorf("criando requisição %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("backend request failed", "method", method, "path", path, "error", err)
		return nil, env, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, env, fmt.Errorf("%w: lendo resposta: %v", ErrTransport, err)
	}

	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			if resp.StatusCode >= http.StatusBadRequest {
				return nil, env, &APIError{Status: resp.StatusCode, Detail: string(respBody)}
			}
			return nil, env, fmt.Errorf("resposta inválida de %s %s: %w", method, path, err)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest || (env.Success != nil && !*env.Success) {
		status := resp.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusUnprocessableEntity
		}
		return nil, env, &APIError{Status: status, Message: env.Message, Detail: env.Error}
	}

	return respBody, env, nil
}

// StatusFor traduz um erro de adapter no status e na mensagem que o navegador recebe.
func StatusFor(err error, fallback string) (int, string) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		if msg := apiErr.UserMessage(); msg != "" {
			return apiErr.Status, msg
		}
		return apiErr.Status, fallback
	case errors.Is(err, ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, fallback
	default:
		return http.StatusInternalServerError, fallback
	}
}
