package leads

import (
	"context"
	"dashboard/backend"
	"dashboard/middlewares"
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type API interface {
	CreateOne(ctx context.Context, input schemas.LeadInput) (*schemas.Lead, error)
	UpdateOne(ctx context.Context, id string, input schemas.LeadInput) (*schemas.Lead, error)
	DeleteOne(ctx context.Context, id string) error
}

type StatsGetter interface {
	GetStats(ctx context.Context, id string) (*schemas.FunnelStats, error)
}

// LiveBoards recarrega o quadro aberto de um funil.
type LiveBoards interface {
	Refresh(ctx context.Context, funnelID string)
}

type HistoryRecorder interface {
	Record(ctx context.Context, entry schemas.FunnelsHistory)
}

type Handler struct {
	leads         API
	funnels       StatsGetter
	boards        LiveBoards
	history       HistoryRecorder
	defaultUserID string
	validate      *validator.Validate
	logger        *zap.SugaredLogger
}

func NewHandler(leads API, funnels StatsGetter, boards LiveBoards, history HistoryRecorder, defaultUserID string, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		leads:         leads,
		funnels:       funnels,
		boards:        boards,
		history:       history,
		defaultUserID: defaultUserID,
		validate:      validator.New(),
		logger:        logger,
	}
}

func (h *Handler) userID(ctx context.Context) string {
	if user, ok := middlewares.UserFromContext(ctx); ok && user.ID != "" {
		return user.ID
	}
	return h.defaultUserID
}

// afterMutation busca de novo as estatísticas do funil (nunca calculadas
// localmente) e atualiza o quadro vivo.
func (h *Handler) afterMutation(ctx context.Context, funnelID, leadID, action string) *schemas.FunnelStats {
	h.history.Record(ctx, schemas.FunnelsHistory{
		RelatedUser:   h.userID(ctx),
		RelatedFunnel: funnelID,
		RelatedLead:   leadID,
		Action:        action,
	})
	h.boards.Refresh(ctx, funnelID)

	stats, err := h.funnels.GetStats(ctx, funnelID)
	if err != nil {
		h.logger.Warnw("failed to refetch funnel stats", "funnel_id", funnelID, "error", err)
		return nil
	}
	return stats
}

func (h *Handler) sendBackendError(w http.ResponseWriter, err error, fallback string) {
	status, msg := backend.StatusFor(err, fallback)
	utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
}
