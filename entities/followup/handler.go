package followup

import (
	"context"
	"dashboard/backend"
	"dashboard/middlewares"
	"dashboard/schemas"
	"dashboard/utils"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type API interface {
	FlowAPI
	GetAgent(ctx context.Context, funnelID string) (*schemas.FollowUpAgent, error)
	SaveAgent(ctx context.Context, funnelID string, agent schemas.FollowUpAgent) (*schemas.FollowUpAgent, error)
	GetHistory(ctx context.Context, funnelID, leadID string) ([]schemas.FollowUpHistory, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, entry schemas.FunnelsHistory)
}

type Handler struct {
	api           API
	history       HistoryRecorder
	defaultUserID string
	validate      *validator.Validate
	logger        *zap.SugaredLogger
}

func NewHandler(api API, history HistoryRecorder, defaultUserID string, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		api:           api,
		history:       history,
		defaultUserID: defaultUserID,
		validate:      validator.New(),
		logger:        logger,
	}
}

func (h *Handler) record(ctx context.Context, funnelID, leadID, action string) {
	userID := h.defaultUserID
	if user, ok := middlewares.UserFromContext(ctx); ok && user.ID != "" {
		userID = user.ID
	}
	h.history.Record(ctx, schemas.FunnelsHistory{
		RelatedUser:   userID,
		RelatedFunnel: funnelID,
		RelatedLead:   leadID,
		Action:        "followup_" + action,
	})
}

// loadBoard carrega o quadro antes de qualquer ação. Responde ao cliente em caso de erro.
func (h *Handler) loadBoard(w http.ResponseWriter, r *http.Request) (*Board, bool) {
	board := NewBoard(h.api, h.logger)
	if _, err := board.Load(r.Context(), r.PathValue("funnelId")); err != nil {
		status, msg := backend.StatusFor(err, "Erro ao carregar o fluxo de follow-up")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return nil, false
	}
	return board, true
}

func (h *Handler) sendBoardError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNoEntryStep):
		utils.SendResponse(w, http.StatusConflict, "Nenhuma etapa de follow-up disponível para receber o lead", nil, utils.FOLLOWUP_STEPS_NOT_INITIALIZED)
	case errors.Is(err, ErrPlaceholderStep):
		utils.SendResponse(w, http.StatusConflict, "Salve as etapas padrão antes de editá-las", nil, utils.FOLLOWUP_STEPS_NOT_INITIALIZED)
	case errors.Is(err, ErrUnknownAction):
		utils.SendResponse(w, http.StatusBadRequest, "Ação inválida", nil, utils.INVALID_REQUEST_DATA)
	default:
		status, msg := backend.StatusFor(err, fallback)
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
	}
}
