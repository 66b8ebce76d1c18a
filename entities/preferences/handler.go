package preferences

import (
	"context"
	"dashboard/middlewares"
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Store interface {
	Get(ctx context.Context, userID string) (schemas.Preferences, error)
	Save(ctx context.Context, userID string, prefs schemas.Preferences) error
	Delete(ctx context.Context, userID string) error
}

type Handler struct {
	store         Store
	defaultUserID string
	validate      *validator.Validate
	logger        *zap.SugaredLogger
}

func NewHandler(store Store, defaultUserID string, logger *zap.SugaredLogger) *Handler {
	return &Handler{store: store, defaultUserID: defaultUserID, validate: validator.New(), logger: logger}
}

func (h *Handler) userID(r *http.Request) string {
	if user, ok := middlewares.UserFromContext(r.Context()); ok && user.ID != "" {
		return user.ID
	}
	return h.defaultUserID
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r)
	prefs, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to read preferences", "user_id", userID, "error", err)
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_READ_PREFERENCES)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", prefs, 0)
}

func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	prefs := schemas.Preferences{}
	if err := utils.DecodeAndValidate(r, &prefs, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Preferências inválidas: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}
	if prefs.Theme == "" {
		prefs.Theme = Defaults().Theme
	}

	userID := h.userID(r)
	if err := h.store.Save(r.Context(), userID, prefs); err != nil {
		h.logger.Errorw("failed to save preferences", "user_id", userID, "error", err)
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_SAVE_PREFERENCES)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", prefs, 0)
}

// DeleteOne volta o usuário para as preferências padrão.
func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r)
	if err := h.store.Delete(r.Context(), userID); err != nil {
		h.logger.Errorw("failed to reset preferences", "user_id", userID, "error", err)
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_SAVE_PREFERENCES)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", Defaults(), 0)
}
