package leads

import (
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
)

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	input := schemas.LeadInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados do lead inválidos: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	lead, err := h.leads.CreateOne(r.Context(), input)
	if err != nil {
		h.logger.Errorw("failed to create lead", "funnel_id", input.FunnelID, "stage_id", input.StageID, "error", err)
		h.sendBackendError(w, err, "Erro ao criar lead")
		return
	}

	stats := h.afterMutation(r.Context(), input.FunnelID, lead.ID, "lead_created")
	utils.SendResponse(w, http.StatusCreated, "Lead criado", schemas.LeadMutation{Lead: lead, Stats: stats}, 0)
}
