package followup

import (
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
)

func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	funnelID := r.PathValue("funnelId")

	agent, err := h.api.GetAgent(r.Context(), funnelID)
	if err != nil {
		if backend.IsNotFound(err) {
			utils.SendResponse(w, http.StatusOK, "", nil, 0)
			return
		}
		h.logger.Errorw("failed to load follow-up agent", "funnel_id", funnelID, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar o agente de follow-up")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", agent, 0)
}

func (h *Handler) SaveAgent(w http.ResponseWriter, r *http.Request) {
	funnelID := r.PathValue("funnelId")

	agent := schemas.FollowUpAgent{}
	if err := utils.DecodeAndValidate(r, &agent, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados do agente inválidos: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}
	agent.FunnelID = funnelID

	saved, err := h.api.SaveAgent(r.Context(), funnelID, agent)
	if err != nil {
		h.logger.Errorw("failed to save follow-up agent", "funnel_id", funnelID, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao salvar o agente de follow-up")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}

	h.record(r.Context(), funnelID, "", "agent_saved")
	utils.SendResponse(w, http.StatusOK, "Agente salvo", saved, 0)
}
