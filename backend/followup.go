package backend

import (
	"context"
	"dashboard/schemas"
	"fmt"
	"net/http"
	"net/url"
)

type FollowUp struct {
	client *Client
}

func NewFollowUp(client *Client) *FollowUp {
	return &FollowUp{client: client}
}

func followUpPath(funnelID string, suffix string) string {
	return fmt.Sprintf("/followup/%s%s", url.PathEscape(funnelID), suffix)
}

func (f *FollowUp) GetAgent(ctx context.Context, funnelID string) (*schemas.FollowUpAgent, error) {
	agent := &schemas.FollowUpAgent{}
	if err := f.client.Do(ctx, http.MethodGet, followUpPath(funnelID, "/agent"), nil, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (f *FollowUp) SaveAgent(ctx context.Context, funnelID string, agent schemas.FollowUpAgent) (*schemas.FollowUpAgent, error) {
	saved := &schemas.FollowUpAgent{}
	if err := f.client.Do(ctx, http.MethodPut, followUpPath(funnelID, "/agent"), agent, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (f *FollowUp) GetSteps(ctx context.Context, funnelID string) ([]schemas.FollowUpStep, error) {
	steps := []schemas.FollowUpStep{}
	if err := f.client.Do(ctx, http.MethodGet, followUpPath(funnelID, "/steps"), nil, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// InitializeDefaultSteps pede ao backend para persistir o conjunto padrão de etapas.
func (f *FollowUp) InitializeDefaultSteps(ctx context.Context, funnelID string) error {
	return f.client.Do(ctx, http.MethodPost, followUpPath(funnelID, "/steps/initialize"), nil, nil)
}

func (f *FollowUp) CreateStep(ctx context.Context, funnelID string, input schemas.FollowUpStepInput) (*schemas.FollowUpStep, error) {
	step := &schemas.FollowUpStep{}
	if err := f.client.Do(ctx, http.MethodPost, followUpPath(funnelID, "/steps"), input, step); err != nil {
		return nil, err
	}
	return step, nil
}

func (f *FollowUp) UpdateStep(ctx context.Context, funnelID, stepID string, input schemas.FollowUpStepInput) error {
	return f.client.Do(ctx, http.MethodPut, followUpPath(funnelID, "/steps/"+url.PathEscape(stepID)), input, nil)
}

func (f *FollowUp) DeleteStep(ctx context.Context, funnelID, stepID string) error {
	return f.client.Do(ctx, http.MethodDelete, followUpPath(funnelID, "/steps/"+url.PathEscape(stepID)), nil, nil)
}

func (f *FollowUp) GetLeads(ctx context.Context, funnelID string) ([]schemas.LeadInFlow, error) {
	leads := []schemas.LeadInFlow{}
	if err := f.client.Do(ctx, http.MethodGet, followUpPath(funnelID, "/leads"), nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (f *FollowUp) AddLead(ctx context.Context, funnelID, leadID, stepID string) error {
	body := map[string]string{"leadId": leadID, "stepId": stepID}
	return f.client.Do(ctx, http.MethodPost, followUpPath(funnelID, "/leads"), body, nil)
}

func (f *FollowUp) MoveLead(ctx context.Context, funnelID, leadInFlowID, stepID string) error {
	body := map[string]string{"stepId": stepID}
	return f.client.Do(ctx, http.MethodPut, followUpPath(funnelID, "/leads/"+url.PathEscape(leadInFlowID)+"/move"), body, nil)
}

func (f *FollowUp) RemoveLead(ctx context.Context, funnelID, leadInFlowID string) error {
	return f.client.Do(ctx, http.MethodDelete, followUpPath(funnelID, "/leads/"+url.PathEscape(leadInFlowID)), nil, nil)
}

// LeadAction dispara uma ação de ciclo de vida: send, pause, resume, won ou lost.
func (f *FollowUp) LeadAction(ctx context.Context, funnelID, leadInFlowID, action string) error {
	return f.client.Do(ctx, http.MethodPost, followUpPath(funnelID, "/leads/"+url.PathEscape(leadInFlowID)+"/"+action), nil, nil)
}

func (f *FollowUp) GetHistory(ctx context.Context, funnelID, leadID string) ([]schemas.FollowUpHistory, error) {
	path := followUpPath(funnelID, "/history")
	if leadID != "" {
		path += "?leadId=" + url.QueryEscape(leadID)
	}
	history := []schemas.FollowUpHistory{}
	if err := f.client.Do(ctx, http.MethodGet, path, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}
