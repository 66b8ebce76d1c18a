package funnels

import (
	"dashboard/backend"
	"dashboard/utils"
	"net/http"
)

// DeleteOne remove o funil; etapas e leads são apagados em cascata pelo backend.
func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.funnels.DeleteOne(r.Context(), id); err != nil {
		h.logger.Errorw("failed to delete funnel", "funnel_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao excluir funil")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}

	h.record(r.Context(), id, "", "funnel_deleted", "")
	h.boards.Stop(id)
	utils.SendResponse(w, http.StatusOK, "Funil excluído", nil, 0)
}
