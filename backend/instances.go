package backend

import (
	"context"
	"dashboard/schemas"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Instances struct {
	client *Client
}

func NewInstances(client *Client) *Instances {
	return &Instances{client: client}
}

// instanceListResponse aceita as duas formas que o backend devolve:
// {"instances": [...]} e {"data": [...]}. Qualquer outra forma é erro.
type instanceListResponse struct {
	Instances *[]schemas.EvolutionInstance `json:"instances"`
	Data      *[]schemas.EvolutionInstance `json:"data"`
}

func decodeInstanceList(body []byte) ([]schemas.EvolutionInstance, error) {
	resp := instanceListResponse{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("lista de instâncias inválida: %w", err)
	}
	switch {
	case resp.Instances != nil:
		return *resp.Instances, nil
	case resp.Data != nil:
		return *resp.Data, nil
	default:
		return nil, fmt.Errorf("lista de instâncias sem campo instances ou data")
	}
}

func (i *Instances) GetAll(ctx context.Context) ([]schemas.EvolutionInstance, error) {
	body, err := i.client.DoFull(ctx, http.MethodGet, "/evolution/instances", nil)
	if err != nil {
		return nil, err
	}
	return decodeInstanceList(body)
}

func (i *Instances) GetOne(ctx context.Context, id string) (*schemas.EvolutionInstance, error) {
	instance := &schemas.EvolutionInstance{}
	if err := i.client.Do(ctx, http.MethodGet, "/evolution/instances/"+url.PathEscape(id), nil, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func (i *Instances) CreateOne(ctx context.Context, input schemas.EvolutionInstanceInput) (*schemas.EvolutionInstance, error) {
	instance := &schemas.EvolutionInstance{}
	if err := i.client.Do(ctx, http.MethodPost, "/evolution/instances", input, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func (i *Instances) DeleteOne(ctx context.Context, id string) error {
	return i.client.Do(ctx, http.MethodDelete, "/evolution/instances/"+url.PathEscape(id), nil, nil)
}

func (i *Instances) UpdateState(ctx context.Context, id string, state schemas.ConnectionState) error {
	body := map[string]schemas.ConnectionState{"connectionState": state}
	return i.client.Do(ctx, http.MethodPatch, "/evolution/instances/"+url.PathEscape(id), body, nil)
}
