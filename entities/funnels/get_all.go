package funnels

import (
	"dashboard/backend"
	"dashboard/utils"
	"net/http"
)

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	funnels, err := h.funnels.GetAll(r.Context(), h.userID(r.Context()))
	if err != nil {
		h.logger.Errorw("failed to list funnels", "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar funis")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", funnels, 0)
}
