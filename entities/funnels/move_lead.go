package funnels

import (
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"errors"
	"fmt"
	"net/http"
)

func (h *Handler) MoveLead(w http.ResponseWriter, r *http.Request) {
	funnelID := r.PathValue("id")
	leadID := r.PathValue("leadId")

	input := schemas.MoveLeadInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados da movimentação inválidos: "+err.Error(), nil, 0)
		return
	}

	controller := h.boards.Controller(funnelID)
	if controller.Snapshot() == nil {
		if _, err := controller.Load(r.Context(), funnelID); err != nil {
			if errors.Is(err, ErrFunnelNotFound) {
				utils.SendRedirect(w, http.StatusNotFound, "Funil não encontrado", FUNNELS_PAGE)
				return
			}
			status, msg := backend.StatusFor(err, "Erro ao carregar o funil")
			utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
			return
		}
	}

	funnel, err := controller.MoveLead(r.Context(), leadID, input.StageID, input.Order)
	if err != nil {
		status, msg := backend.StatusFor(err, "Erro ao mover lead")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}

	h.record(r.Context(), funnelID, leadID, "lead_moved", fmt.Sprintf("stage=%s order=%d", input.StageID, input.Order))
	if h.boards.IsLive(funnelID) {
		h.boards.Publish(funnel)
	}
	utils.SendResponse(w, http.StatusOK, "", funnel, 0)
}
