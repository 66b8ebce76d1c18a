package followup

import (
	"dashboard/utils"
	"net/http"
)

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	utils.SendResponse(w, http.StatusOK, "", board.Snapshot(), 0)
}
