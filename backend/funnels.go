package backend

import (
	"context"
	"dashboard/schemas"
	"fmt"
	"net/http"
	"net/url"
)

type Funnels struct {
	client *Client
}

func NewFunnels(client *Client) *Funnels {
	return &Funnels{client: client}
}

func (f *Funnels) GetAll(ctx context.Context, userID string) ([]schemas.Funnel, error) {
	path := "/funnels"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	funnels := []schemas.Funnel{}
	if err := f.client.Do(ctx, http.MethodGet, path, nil, &funnels); err != nil {
		return nil, err
	}
	return funnels, nil
}

// GetOne busca o funil com as etapas e os leads de cada etapa.
func (f *Funnels) GetOne(ctx context.Context, id string) (*schemas.Funnel, error) {
	funnel := &schemas.Funnel{}
	if err := f.client.Do(ctx, http.MethodGet, fmt.Sprintf("/funnels/%s?include=stages,leads,stats", url.PathEscape(id)), nil, funnel); err != nil {
		return nil, err
	}
	return funnel, nil
}

func (f *Funnels) GetStats(ctx context.Context, id string) (*schemas.FunnelStats, error) {
	stats := &schemas.FunnelStats{}
	if err := f.client.Do(ctx, http.MethodGet, fmt.Sprintf("/funnels/%s/stats", url.PathEscape(id)), nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (f *Funnels) CreateOne(ctx context.Context, input schemas.FunnelInput) (*schemas.Funnel, error) {
	funnel := &schemas.Funnel{}
	if err := f.client.Do(ctx, http.MethodPost, "/funnels", input, funnel); err != nil {
		return nil, err
	}
	return funnel, nil
}

func (f *Funnels) UpdateOne(ctx context.Context, id string, input schemas.FunnelInput) (*schemas.Funnel, error) {
	funnel := &schemas.Funnel{}
	if err := f.client.Do(ctx, http.MethodPut, "/funnels/"+url.PathEscape(id), input, funnel); err != nil {
		return nil, err
	}
	return funnel, nil
}

func (f *Funnels) DeleteOne(ctx context.Context, id string) error {
	return f.client.Do(ctx, http.MethodDelete, "/funnels/"+url.PathEscape(id), nil, nil)
}
