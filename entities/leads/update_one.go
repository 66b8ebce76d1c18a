package leads

import (
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
)

func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	input := schemas.LeadInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados do lead inválidos: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	lead, err := h.leads.UpdateOne(r.Context(), id, input)
	if err != nil {
		h.logger.Errorw("failed to update lead", "lead_id", id, "error", err)
		h.sendBackendError(w, err, "Erro ao atualizar lead")
		return
	}

	stats := h.afterMutation(r.Context(), input.FunnelID, id, "lead_updated")
	utils.SendResponse(w, http.StatusOK, "Lead atualizado", schemas.LeadMutation{Lead: lead, Stats: stats}, 0)
}
