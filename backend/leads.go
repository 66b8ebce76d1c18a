package backend

import (
	"context"
	"dashboard/schemas"
	"net/http"
	"net/url"
)

type Leads struct {
	client *Client
}

func NewLeads(client *Client) *Leads {
	return &Leads{client: client}
}

func (l *Leads) CreateOne(ctx context.Context, input schemas.LeadInput) (*schemas.Lead, error) {
	lead := &schemas.Lead{}
	if err := l.client.Do(ctx, http.MethodPost, "/leads", input, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Leads) UpdateOne(ctx context.Context, id string, input schemas.LeadInput) (*schemas.Lead, error) {
	lead := &schemas.Lead{}
	if err := l.client.Do(ctx, http.MethodPut, "/leads/"+url.PathEscape(id), input, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Leads) DeleteOne(ctx context.Context, id string) error {
	return l.client.Do(ctx, http.MethodDelete, "/leads/"+url.PathEscape(id), nil, nil)
}

// Move reatribui o lead para outra etapa na posição order.
func (l *Leads) Move(ctx context.Context, id string, input schemas.MoveLeadInput) error {
	return l.client.Do(ctx, http.MethodPut, "/leads/"+url.PathEscape(id)+"/move", input, nil)
}
