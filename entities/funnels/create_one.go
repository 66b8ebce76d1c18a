package funnels

import (
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
)

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	input := schemas.FunnelInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados do funil inválidos: "+err.Error(), nil, 0)
		return
	}

	funnel, err := h.funnels.CreateOne(r.Context(), input)
	if err != nil {
		h.logger.Errorw("failed to create funnel", "name", input.Name, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao criar funil")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}

	h.record(r.Context(), funnel.ID, "", "funnel_created", funnel.Name)
	utils.SendResponse(w, http.StatusCreated, "", funnel, 0)
}
