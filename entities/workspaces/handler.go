package workspaces

import (
	"context"
	"dashboard/schemas"
	"dashboard/utils"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Creator interface {
	Configured() bool
	CreateWorkspace(ctx context.Context, input schemas.WorkspaceInput) (*schemas.WorkspaceResult, error)
}

type Handler struct {
	automation Creator
	validate   *validator.Validate
	logger     *zap.SugaredLogger
}

func NewHandler(automation Creator, logger *zap.SugaredLogger) *Handler {
	return &Handler{automation: automation, validate: validator.New(), logger: logger}
}

// CreateOne devolve o erro classificado em data; o navegador reenvia a mesma
// requisição quando retryable for true.
func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	if !h.automation.Configured() {
		utils.SendResponse(w, http.StatusServiceUnavailable, "Automação de workspaces não configurada", nil, utils.MISSING_CONFIGURATION)
		return
	}

	input := schemas.WorkspaceInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados do workspace inválidos: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	result, err := h.automation.CreateWorkspace(r.Context(), input)
	if err != nil {
		var automationErr *AutomationError
		if !errors.As(err, &automationErr) {
			automationErr = &AutomationError{WorkspaceError: schemas.WorkspaceError{Type: ERROR_UNKNOWN, Message: "Erro ao criar workspace", Retryable: true}, Err: err}
		}
		h.logger.Errorw("workspace automation failed", "type", automationErr.Type, "status", automationErr.Status, "error", err)
		utils.SendResponse(w, http.StatusBadGateway, automationErr.Message, automationErr.WorkspaceError, 0)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "Workspace criado", result, 0)
}
