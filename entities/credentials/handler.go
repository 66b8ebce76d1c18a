package credentials

import (
	"context"
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type API interface {
	GetAll(ctx context.Context) ([]schemas.Credential, error)
	CreateOne(ctx context.Context, payload schemas.CredentialPayload) (*schemas.Credential, error)
	UpdateOne(ctx context.Context, id string, payload schemas.CredentialPayload) (*schemas.Credential, error)
	DeleteOne(ctx context.Context, id string) error
}

type Handler struct {
	api    API
	logger *zap.SugaredLogger
}

func NewHandler(api API, logger *zap.SugaredLogger) *Handler {
	return &Handler{api: api, logger: logger}
}

// decodeForm lê o formulário e monta o payload; nada é enviado ao backend se falhar.
func decodeForm(w http.ResponseWriter, r *http.Request) (schemas.CredentialPayload, bool) {
	form := schemas.CredentialForm{}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "JSON inválido", nil, utils.INVALID_REQUEST_DATA)
		return schemas.CredentialPayload{}, false
	}
	payload, err := BuildPayload(form)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return schemas.CredentialPayload{}, false
	}
	return payload, true
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	credentials, err := h.api.GetAll(r.Context())
	if err != nil {
		h.logger.Errorw("failed to list credentials", "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar credenciais")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", credentials, 0)
}

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeForm(w, r)
	if !ok {
		return
	}

	credential, err := h.api.CreateOne(r.Context(), payload)
	if err != nil {
		h.logger.Errorw("failed to create credential", "type", payload.Type, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao salvar credencial")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusCreated, "Credencial criada", credential, 0)
}

func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	payload, ok := decodeForm(w, r)
	if !ok {
		return
	}

	credential, err := h.api.UpdateOne(r.Context(), id, payload)
	if err != nil {
		h.logger.Errorw("failed to update credential", "credential_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao salvar credencial")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusOK, "Credencial atualizada", credential, 0)
}

func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.api.DeleteOne(r.Context(), id); err != nil {
		h.logger.Errorw("failed to delete credential", "credential_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao excluir credencial")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusOK, "Credencial excluída", nil, 0)
}

// Preview mostra o payload que seria enviado, sem chamar o backend.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	form := schemas.CredentialForm{}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "JSON inválido", nil, utils.INVALID_REQUEST_DATA)
		return
	}
	preview, err := Preview(form)
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", map[string]string{"preview": preview}, 0)
}
