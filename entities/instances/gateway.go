package instances

import (
	"context"
	"dashboard/schemas"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

type ConnectErrorKind string

const (
	CONNECT_TIMEOUT         ConnectErrorKind = "TIMEOUT"
	CONNECT_REFUSED         ConnectErrorKind = "CONNECTION_REFUSED"
	CONNECT_INVALID_API_KEY ConnectErrorKind = "INVALID_API_KEY"
	CONNECT_NOT_FOUND       ConnectErrorKind = "INSTANCE_NOT_FOUND"
	CONNECT_GATEWAY_ERROR   ConnectErrorKind = "GATEWAY_ERROR"
	CONNECT_INVALID_SERVER  ConnectErrorKind = "INVALID_SERVER_URL"
	CONNECT_UNKNOWN         ConnectErrorKind = "UNKNOWN"
)

// ConnectError classifica a falha da chamada de conexão ao gateway de WhatsApp.
type ConnectError struct {
	Kind   ConnectErrorKind
	Status int
	Err    error
}

func (e *ConnectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conexão com o gateway falhou (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("conexão com o gateway falhou (%s): status %d", e.Kind, e.Status)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

func (e *ConnectError) UserMessage() string {
	switch e.Kind {
	case CONNECT_TIMEOUT:
		return "Tempo esgotado ao conectar no servidor Evolution. Verifique se o servidor está online."
	case CONNECT_REFUSED:
		return "Conexão recusada pelo servidor Evolution. Verifique a URL do servidor."
	case CONNECT_INVALID_API_KEY:
		return "API key inválida para o servidor Evolution."
	case CONNECT_NOT_FOUND:
		return "Instância não encontrada no servidor Evolution."
	case CONNECT_GATEWAY_ERROR:
		return "O servidor Evolution respondeu com erro. Tente novamente em instantes."
	case CONNECT_INVALID_SERVER:
		return "URL do servidor Evolution inválida. Use um endereço http ou https."
	default:
		return "Erro ao conectar a instância."
	}
}

// HTTPStatus é o status devolvido ao navegador para cada tipo de falha.
func (e *ConnectError) HTTPStatus() int {
	switch e.Kind {
	case CONNECT_TIMEOUT:
		return http.StatusGatewayTimeout
	case CONNECT_INVALID_API_KEY:
		return http.StatusUnauthorized
	case CONNECT_NOT_FOUND:
		return http.StatusNotFound
	case CONNECT_INVALID_SERVER:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func classifyTransport(err error) *ConnectError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &ConnectError{Kind: CONNECT_TIMEOUT, Err: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &ConnectError{Kind: CONNECT_REFUSED, Err: err}
	default:
		return &ConnectError{Kind: CONNECT_UNKNOWN, Err: err}
	}
}

func classifyStatus(status int) *ConnectError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ConnectError{Kind: CONNECT_INVALID_API_KEY, Status: status}
	case status == http.StatusNotFound:
		return &ConnectError{Kind: CONNECT_NOT_FOUND, Status: status}
	case status >= http.StatusInternalServerError:
		return &ConnectError{Kind: CONNECT_GATEWAY_ERROR, Status: status}
	default:
		return &ConnectError{Kind: CONNECT_UNKNOWN, Status: status}
	}
}

// Gateway fala direto com o servidor Evolution da instância, com timeout explícito.
type Gateway struct {
	client *http.Client
	logger *zap.SugaredLogger
}

func NewGateway(timeout time.Duration, logger *zap.SugaredLogger) *Gateway {
	return &Gateway{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// serverBase aceita só URLs http(s) absolutas; a chamada sai do servidor, não
// do navegador.
func serverBase(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("esquema não permitido: %q", parsed.Scheme)
	}
	if parsed.Host == "" || parsed.User != nil {
		return "", fmt.Errorf("host inválido: %q", raw)
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return strings.TrimRight(parsed.String(), "/"), nil
}

func (g *Gateway) Connect(ctx context.Context, instance schemas.EvolutionInstance) (*schemas.ConnectResult, error) {
	base, err := serverBase(instance.ServerURL)
	if err != nil {
		g.logger.Warnw("refusing evolution server url", "instance_id", instance.ID, "error", err)
		return nil, &ConnectError{Kind: CONNECT_INVALID_SERVER, Err: err}
	}
	endpoint := fmt.Sprintf("%s/instance/connect/%s", base, url.PathEscape(instance.Name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ConnectError{Kind: CONNECT_UNKNOWN, Err: err}
	}
	req.Header.Set("apikey", instance.APIKey)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		connectErr := classifyTransport(err)
		g.logger.Warnw("evolution connect failed", "instance_id", instance.ID, "kind", connectErr.Kind, "elapsed", time.Since(started), "error", err)
		return nil, connectErr
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		connectErr := classifyStatus(resp.StatusCode)
		g.logger.Warnw("evolution connect rejected", "instance_id", instance.ID, "kind", connectErr.Kind, "status", resp.StatusCode)
		return nil, connectErr
	}

	result := &schemas.ConnectResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, &ConnectError{Kind: CONNECT_GATEWAY_ERROR, Status: resp.StatusCode, Err: fmt.Errorf("resposta inválida: %w", err)}
	}
	if result.Base64 == "" && result.Code == "" && result.PairingCode == "" {
		return nil, &ConnectError{Kind: CONNECT_GATEWAY_ERROR, Status: resp.StatusCode, Err: errors.New("resposta sem QR code nem código de pareamento")}
	}
	return result, nil
}
