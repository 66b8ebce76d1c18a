package followup

import (
	"dashboard/backend"
	"dashboard/utils"
	"net/http"
)

type addLeadInput struct {
	LeadID string `json:"leadId" validate:"required"`
}

type moveLeadInput struct {
	StepID string `json:"stepId" validate:"required"`
}

func (h *Handler) AddLead(w http.ResponseWriter, r *http.Request) {
	input := addLeadInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Informe o lead: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	state, err := board.AddLead(r.Context(), input.LeadID)
	if err != nil {
		h.sendBoardError(w, err, "Erro ao adicionar lead ao fluxo")
		return
	}

	h.record(r.Context(), state.FunnelID, input.LeadID, "lead_added")
	utils.SendResponse(w, http.StatusCreated, "", state, 0)
}

func (h *Handler) MoveLead(w http.ResponseWriter, r *http.Request) {
	input := moveLeadInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Informe a etapa de destino: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	state, err := board.MoveLead(r.Context(), r.PathValue("id"), input.StepID)
	if err != nil {
		h.sendBoardError(w, err, "Erro ao mover lead")
		return
	}

	h.record(r.Context(), state.FunnelID, r.PathValue("id"), "lead_moved")
	utils.SendResponse(w, http.StatusOK, "", state, 0)
}

func (h *Handler) RemoveLead(w http.ResponseWriter, r *http.Request) {
	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	state, err := board.RemoveLead(r.Context(), r.PathValue("id"))
	if err != nil {
		h.sendBoardError(w, err, "Erro ao remover lead do fluxo")
		return
	}

	h.record(r.Context(), state.FunnelID, r.PathValue("id"), "lead_removed")
	utils.SendResponse(w, http.StatusOK, "Lead removido do fluxo", state, 0)
}

// LeadAction atende send, pause, resume, won e lost.
func (h *Handler) LeadAction(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")

	board, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	state, err := board.Act(r.Context(), r.PathValue("id"), action)
	if err != nil {
		h.sendBoardError(w, err, "Erro ao executar ação de follow-up")
		return
	}

	h.record(r.Context(), state.FunnelID, r.PathValue("id"), action)
	utils.SendResponse(w, http.StatusOK, "", state, 0)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	funnelID := r.PathValue("funnelId")

	history, err := h.api.GetHistory(r.Context(), funnelID, r.URL.Query().Get("leadId"))
	if err != nil {
		h.logger.Errorw("failed to load follow-up history", "funnel_id", funnelID, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar histórico de follow-up")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", history, 0)
}
