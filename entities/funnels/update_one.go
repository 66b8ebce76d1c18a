package funnels

import (
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
)

func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	input := schemas.FunnelInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados do funil inválidos: "+err.Error(), nil, 0)
		return
	}

	funnel, err := h.funnels.UpdateOne(r.Context(), id, input)
	if err != nil {
		h.logger.Errorw("failed to update funnel", "funnel_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao atualizar funil")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}

	h.record(r.Context(), id, "", "funnel_updated", funnel.Name)
	h.reloadLive(r.Context(), id)
	utils.SendResponse(w, http.StatusOK, "", funnel, 0)
}
