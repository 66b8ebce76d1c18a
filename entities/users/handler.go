package users

import (
	"context"
	"dashboard/backend"
	"dashboard/middlewares"
	"dashboard/schemas"
	"dashboard/utils"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type API interface {
	GetAll(ctx context.Context) ([]schemas.User, error)
	UpdateOne(ctx context.Context, id string, input schemas.UserUpdateInput) (*schemas.User, error)
	DeleteOne(ctx context.Context, id string) error
}

type Handler struct {
	api    API
	logger *zap.SugaredLogger
}

func NewHandler(api API, logger *zap.SugaredLogger) *Handler {
	return &Handler{api: api, logger: logger}
}

// Me devolve o usuário autenticado, usado pelo navegador para montar o menu.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.UserFromContext(r.Context())
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Usuário não autenticado", nil, 0)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", user, 0)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.GetAll(r.Context())
	if err != nil {
		h.logger.Errorw("failed to list users", "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar usuários")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", users, 0)
}

func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	input := schemas.UserUpdateInput{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "JSON inválido", nil, utils.INVALID_REQUEST_DATA)
		return
	}
	if current, ok := middlewares.UserFromContext(r.Context()); ok && current.ID == id && input.IsAdmin != nil && !*input.IsAdmin {
		utils.SendResponse(w, http.StatusConflict, "Você não pode remover seu próprio acesso de administrador", nil, utils.INVALID_REQUEST_DATA)
		return
	}

	user, err := h.api.UpdateOne(r.Context(), id, input)
	if err != nil {
		h.logger.Errorw("failed to update user", "user_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao atualizar usuário")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusOK, "Usuário atualizado", user, 0)
}

func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if current, ok := middlewares.UserFromContext(r.Context()); ok && current.ID == id {
		utils.SendResponse(w, http.StatusConflict, "Você não pode excluir a si mesmo", nil, utils.INVALID_REQUEST_DATA)
		return
	}

	if err := h.api.DeleteOne(r.Context(), id); err != nil {
		h.logger.Errorw("failed to delete user", "user_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao excluir usuário")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusOK, "Usuário excluído", nil, 0)
}
