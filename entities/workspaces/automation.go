package workspaces

import (
	"bytes"
	"context"
	"dashboard/schemas"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	ERROR_CONNECTION   = "CONNECTION_ERROR"
	ERROR_HTTP         = "HTTP_ERROR"
	ERROR_N8N_REJECTED = "N8N_REJECTED"
	ERROR_PARSE        = "PARSE_ERROR"
	ERROR_UNKNOWN      = "UNKNOWN"
)

const AUTOMATION_TIMEOUT = 60 * time.Second

// AutomationError carrega a classificação devolvida ao navegador.
type AutomationError struct {
	schemas.WorkspaceError
	Err error
}

func (e *AutomationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AutomationError) Unwrap() error {
	return e.Err
}

type n8nResponse struct {
	Success     *bool  `json:"success"`
	WorkspaceID string `json:"workspaceId"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	Error       string `json:"error"`
}

// Automation dispara o webhook do n8n que cria o workspace.
type Automation struct {
	webhookURL string
	client     *http.Client
	logger     *zap.SugaredLogger
}

func NewAutomation(webhookURL string, logger *zap.SugaredLogger) *Automation {
	return &Automation{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: AUTOMATION_TIMEOUT},
		logger:     logger,
	}
}

func (a *Automation) Configured() bool {
	return a.webhookURL != ""
}

func (a *Automation) CreateWorkspace(ctx context.Context, input schemas.WorkspaceInput) (*schemas.WorkspaceResult, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, &AutomationError{WorkspaceError: schemas.WorkspaceError{Type: ERROR_UNKNOWN, Message: "Erro ao montar a requisição"}, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &AutomationError{WorkspaceError: schemas.WorkspaceError{Type: ERROR_UNKNOWN, Message: "Erro ao montar a requisição"}, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &AutomationError{
			WorkspaceError: schemas.WorkspaceError{Type: ERROR_CONNECTION, Message: "Não foi possível conectar ao serviço de automação", Retryable: true},
			Err:            err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AutomationError{
			WorkspaceError: schemas.WorkspaceError{Type: ERROR_CONNECTION, Message: "Conexão interrompida com o serviço de automação", Retryable: true},
			Err:            err,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &AutomationError{WorkspaceError: schemas.WorkspaceError{
			Type:      ERROR_HTTP,
			Message:   fmt.Sprintf("Serviço de automação respondeu %d", resp.StatusCode),
			Status:    resp.StatusCode,
			Retryable: resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests,
		}}
	}

	answer, err := decodeAnswer(body)
	if err != nil {
		return nil, &AutomationError{
			WorkspaceError: schemas.WorkspaceError{Type: ERROR_PARSE, Message: "Resposta inválida do serviço de automação", Status: resp.StatusCode},
			Err:            err,
		}
	}

	switch {
	case answer.Success != nil && !*answer.Success:
		message := answer.Message
		if message == "" {
			message = answer.Error
		}
		if message == "" {
			message = "Criação do workspace recusada"
		}
		return nil, &AutomationError{WorkspaceError: schemas.WorkspaceError{Type: ERROR_N8N_REJECTED, Message: message, Status: resp.StatusCode}}
	case answer.Success == nil && answer.WorkspaceID == "":
		return nil, &AutomationError{WorkspaceError: schemas.WorkspaceError{Type: ERROR_UNKNOWN, Message: "Resposta sem confirmação do serviço de automação", Status: resp.StatusCode, Retryable: true}}
	}

	return &schemas.WorkspaceResult{WorkspaceID: answer.WorkspaceID, Status: answer.Status, Message: answer.Message}, nil
}

// decodeAnswer aceita objeto ou lista com um objeto, como o n8n costuma responder.
func decodeAnswer(body []byte) (*n8nResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("corpo vazio")
	}
	if trimmed[0] == '[' {
		answers := []n8nResponse{}
		if err := json.Unmarshal(trimmed, &answers); err != nil {
			return nil, err
		}
		if len(answers) == 0 {
			return nil, fmt.Errorf("lista vazia")
		}
		return &answers[0], nil
	}
	answer := &n8nResponse{}
	if err := json.Unmarshal(trimmed, answer); err != nil {
		return nil, err
	}
	return answer, nil
}
