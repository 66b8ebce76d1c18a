package backend

import (
	"context"
	"dashboard/schemas"
	"fmt"
	"net/http"
	"net/url"
)

type Stages struct {
	client *Client
}

func NewStages(client *Client) *Stages {
	return &Stages{client: client}
}

func (s *Stages) CreateOne(ctx context.Context, funnelID string, input schemas.StageInput) (*schemas.Stage, error) {
	stage := &schemas.Stage{}
	path := fmt.Sprintf("/funnels/%s/stages", url.PathEscape(funnelID))
	if err := s.client.Do(ctx, http.MethodPost, path, input, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

func (s *Stages) UpdateOne(ctx context.Context, stageID string, input schemas.StageInput) (*schemas.Stage, error) {
	stage := &schemas.Stage{}
	if err := s.client.Do(ctx, http.MethodPut, "/stages/"+url.PathEscape(stageID), input, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

func (s *Stages) DeleteOne(ctx context.Context, stageID string) error {
	return s.client.Do(ctx, http.MethodDelete, "/stages/"+url.PathEscape(stageID), nil, nil)
}
