package leads

import (
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
)

// DeleteOne exige ?funnelId= para poder recarregar o quadro e as estatísticas.
func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	funnelID := r.URL.Query().Get("funnelId")
	if funnelID == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Informe o funil do lead", nil, utils.INVALID_REQUEST_DATA)
		return
	}

	if err := h.leads.DeleteOne(r.Context(), id); err != nil {
		h.logger.Errorw("failed to delete lead", "lead_id", id, "error", err)
		h.sendBackendError(w, err, "Erro ao excluir lead")
		return
	}

	stats := h.afterMutation(r.Context(), funnelID, id, "lead_deleted")
	utils.SendResponse(w, http.StatusOK, "Lead excluído", schemas.LeadMutation{Stats: stats}, 0)
}
