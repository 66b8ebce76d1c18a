package funnels

import (
	"dashboard/utils"
	"errors"
	"net/http"
)

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	funnel, err := h.boards.Controller(id).Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFunnelNotFound) {
			utils.SendRedirect(w, http.StatusNotFound, "Funil não encontrado", FUNNELS_PAGE)
			return
		}
		utils.SendRedirect(w, http.StatusBadGateway, "Erro ao carregar o funil", FUNNELS_PAGE)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", funnel, 0)
}
