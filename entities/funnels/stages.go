package funnels

import (
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"errors"
	"net/http"
)

func (h *Handler) CreateOneStage(w http.ResponseWriter, r *http.Request) {
	funnelID := r.PathValue("id")

	input := schemas.StageInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados da etapa inválidos: "+err.Error(), nil, 0)
		return
	}

	stage, err := h.stages.CreateOne(r.Context(), funnelID, input)
	if err != nil {
		h.logger.Errorw("failed to create stage", "funnel_id", funnelID, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao criar etapa")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}

	h.record(r.Context(), funnelID, "", "stage_created", stage.Name)
	h.reloadLive(r.Context(), funnelID)
	utils.SendResponse(w, http.StatusCreated, "", stage, 0)
}

// DeleteOneStage recusa etapas fixas (ganho/perdido) antes de chamar o backend.
func (h *Handler) DeleteOneStage(w http.ResponseWriter, r *http.Request) {
	funnelID := r.PathValue("id")
	stageID := r.PathValue("stageId")

	funnel, err := h.boards.Controller(funnelID).Load(r.Context(), funnelID)
	if err != nil {
		if errors.Is(err, ErrFunnelNotFound) {
			utils.SendRedirect(w, http.StatusNotFound, "Funil não encontrado", FUNNELS_PAGE)
			return
		}
		status, msg := backend.StatusFor(err, "Erro ao carregar o funil")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}

	var stage *schemas.Stage
	for i := range funnel.Stages {
		if funnel.Stages[i].ID == stageID {
			stage = &funnel.Stages[i]
			break
		}
	}
	if stage == nil {
		utils.SendResponse(w, http.StatusNotFound, "Etapa não encontrada", nil, 0)
		return
	}
	if stage.IsFixed {
		utils.SendResponse(w, http.StatusConflict, "Etapas fixas não podem ser excluídas", nil, utils.CANNOT_DELETE_FIXED_STAGE)
		return
	}

	if err := h.stages.DeleteOne(r.Context(), stageID); err != nil {
		h.logger.Errorw("failed to delete stage", "funnel_id", funnelID, "stage_id", stageID, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao excluir etapa")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}

	h.record(r.Context(), funnelID, "", "stage_deleted", stage.Name)
	h.reloadLive(r.Context(), funnelID)
	utils.SendResponse(w, http.StatusOK, "Etapa excluída", nil, 0)
}
