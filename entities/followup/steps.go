package followup

import (
	"dashboard/schemas"
	"dashboard/utils"
	"net/http"
)

func (h *Handler) CreateStep(w http.ResponseWriter, r *http.Request) {
	input := schemas.FollowUpStepInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados da etapa inválidos: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	state, err := board.AddStep(r.Context(), input)
	if err != nil {
		h.sendBoardError(w, err, "Erro ao criar etapa")
		return
	}

	h.record(r.Context(), state.FunnelID, "", "step_created")
	utils.SendResponse(w, http.StatusCreated, "", state, 0)
}

func (h *Handler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	input := schemas.FollowUpStepInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados da etapa inválidos: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	state, err := board.UpdateStep(r.Context(), r.PathValue("stepId"), input)
	if err != nil {
		h.sendBoardError(w, err, "Erro ao atualizar etapa")
		return
	}

	h.record(r.Context(), state.FunnelID, "", "step_updated")
	utils.SendResponse(w, http.StatusOK, "", state, 0)
}

func (h *Handler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	state, err := board.DeleteStep(r.Context(), r.PathValue("stepId"))
	if err != nil {
		h.sendBoardError(w, err, "Erro ao excluir etapa")
		return
	}

	h.record(r.Context(), state.FunnelID, "", "step_deleted")
	utils.SendResponse(w, http.StatusOK, "Etapa excluída", state, 0)
}
