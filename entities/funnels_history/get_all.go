package funnelshistory

import (
	"context"
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type Reader interface {
	GetAll(ctx context.Context, query Query) ([]schemas.FunnelsHistory, error)
}

type Handler struct {
	store  Reader
	logger *zap.SugaredLogger
}

func NewHandler(store Reader, logger *zap.SugaredLogger) *Handler {
	return &Handler{store: store, logger: logger}
}

// GetAll lista o histórico de um funil. Aceita leadId, from, until e limit.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := Query{FunnelID: r.PathValue("id"), LeadID: params.Get("leadId")}

	if from := params.Get("from"); from != "" {
		parsed, err := utils.ParseDate(from)
		if err != nil {
			utils.SendResponse(w, http.StatusBadRequest, "Data inicial inválida", nil, 0)
			return
		}
		query.From = parsed
	}
	if until := params.Get("until"); until != "" {
		parsed, err := utils.ParseDate(until)
		if err != nil {
			utils.SendResponse(w, http.StatusBadRequest, "Data final inválida", nil, 0)
			return
		}
		query.Until = parsed
	}
	if limit := params.Get("limit"); limit != "" {
		parsed, err := strconv.ParseInt(limit, 10, 64)
		if err != nil || parsed <= 0 {
			utils.SendResponse(w, http.StatusBadRequest, "Limite inválido", nil, 0)
			return
		}
		query.Limit = parsed
	}

	history, err := h.store.GetAll(r.Context(), query)
	if err != nil {
		h.logger.Errorw("failed to list funnel history", "funnel_id", query.FunnelID, "error", err)
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_FUNNEL_HISTORY_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", history, 0)
}
