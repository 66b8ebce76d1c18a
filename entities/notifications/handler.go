package notifications

import (
	"context"
	"dashboard/backend"
	"dashboard/middlewares"
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"

	"go.uber.org/zap"
)

type API interface {
	GetAll(ctx context.Context, userID string, unreadOnly bool) ([]schemas.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Dismiss(ctx context.Context, id string) error
}

type Handler struct {
	api           API
	defaultUserID string
	logger        *zap.SugaredLogger
}

func NewHandler(api API, defaultUserID string, logger *zap.SugaredLogger) *Handler {
	return &Handler{api: api, defaultUserID: defaultUserID, logger: logger}
}

func (h *Handler) userID(r *http.Request) string {
	if user, ok := middlewares.UserFromContext(r.Context()); ok && user.ID != "" {
		return user.ID
	}
	return h.defaultUserID
}

// GetAll aceita ?unread=true para trazer só as não lidas.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r)
	notifications, err := h.api.GetAll(r.Context(), userID, r.URL.Query().Get("unread") == "true")
	if err != nil {
		h.logger.Errorw("failed to list notifications", "user_id", userID, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar notificações")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", notifications, 0)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Erro ao marcar notificação como lida", func(ctx context.Context) error {
		return h.api.MarkRead(ctx, r.PathValue("id"))
	})
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Erro ao marcar notificações como lidas", func(ctx context.Context) error {
		return h.api.MarkAllRead(ctx, h.userID(r))
	})
}

func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "Erro ao dispensar notificação", func(ctx context.Context) error {
		return h.api.Dismiss(ctx, r.PathValue("id"))
	})
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fallback string, call func(ctx context.Context) error) {
	if err := call(r.Context()); err != nil {
		h.logger.Errorw("notification update failed", "notification_id", r.PathValue("id"), "error", err)
		status, msg := backend.StatusFor(err, fallback)
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusNoContent, "", nil, 0)
}
