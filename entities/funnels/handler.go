package funnels

import (
	"context"
	"dashboard/backend"
	"dashboard/middlewares"
	"dashboard/realtime"
	"dashboard/schemas"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const FUNNELS_PAGE = "/funnels"

type HistoryRecorder interface {
	Record(ctx context.Context, entry schemas.FunnelsHistory)
}

type Handler struct {
	funnels       *backend.Funnels
	stages        *backend.Stages
	boards        *Boards
	hub           *realtime.Hub
	history       HistoryRecorder
	defaultUserID string
	validate      *validator.Validate
	logger        *zap.SugaredLogger
}

func NewHandler(funnels *backend.Funnels, stages *backend.Stages, boards *Boards, hub *realtime.Hub, history HistoryRecorder, defaultUserID string, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		funnels:       funnels,
		stages:        stages,
		boards:        boards,
		hub:           hub,
		history:       history,
		defaultUserID: defaultUserID,
		validate:      validator.New(),
		logger:        logger,
	}
}

func (h *Handler) userID(ctx context.Context) string {
	if user, ok := middlewares.UserFromContext(ctx); ok && user.ID != "" {
		return user.ID
	}
	return h.defaultUserID
}

func (h *Handler) record(ctx context.Context, funnelID, leadID, action, details string) {
	h.history.Record(ctx, schemas.FunnelsHistory{
		RelatedUser:   h.userID(ctx),
		RelatedFunnel: funnelID,
		RelatedLead:   leadID,
		Action:        action,
		Details:       details,
	})
}

func (h *Handler) reloadLive(ctx context.Context, funnelID string) {
	h.boards.Refresh(ctx, funnelID)
}
