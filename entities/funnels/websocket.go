package funnels

import (
	"dashboard/backend"
	"dashboard/middlewares"
	"dashboard/schemas"
	"dashboard/utils"
	"errors"
	"net/http"
)

// WebSocket entrega o quadro do funil e as atualizações ao vivo ao navegador.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	funnelID := r.PathValue("id")
	token := middlewares.TokenFromRequest(r)

	funnel, err := h.boards.Watch(r.Context(), funnelID, token)
	if err != nil {
		if errors.Is(err, ErrFunnelNotFound) {
			utils.SendRedirect(w, http.StatusNotFound, "Funil não encontrado", FUNNELS_PAGE)
			return
		}
		status, msg := backend.StatusFor(err, "Erro ao carregar o funil")
		utils.SendRedirect(w, status, msg, FUNNELS_PAGE)
		return
	}
	defer h.boards.Release(funnelID, token)

	initial := schemas.FunnelWSMessage{Action: "snapshot", Board: funnel}
	if err := h.hub.Serve(w, r, funnelID, initial, nil); err != nil {
		h.logger.Warnw("funnel websocket closed with error", "funnel_id", funnelID, "error", err)
	}
}
