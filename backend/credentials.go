package backend

import (
	"context"
	"dashboard/schemas"
	"net/http"
	"net/url"
)

type Credentials struct {
	client *Client
}

func NewCredentials(client *Client) *Credentials {
	return &Credentials{client: client}
}

func (c *Credentials) GetAll(ctx context.Context) ([]schemas.Credential, error) {
	credentials := []schemas.Credential{}
	if err := c.client.Do(ctx, http.MethodGet, "/credentials", nil, &credentials); err != nil {
		return nil, err
	}
	return credentials, nil
}

func (c *Credentials) CreateOne(ctx context.Context, payload schemas.CredentialPayload) (*schemas.Credential, error) {
	credential := &schemas.Credential{}
	if err := c.client.Do(ctx, http.MethodPost, "/credentials", payload, credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (c *Credentials) UpdateOne(ctx context.Context, id string, payload schemas.CredentialPayload) (*schemas.Credential, error) {
	credential := &schemas.Credential{}
	if err := c.client.Do(ctx, http.MethodPut, "/credentials/"+url.PathEscape(id), payload, credential); err != nil {
		return nil, err
	}
	return credential, nil
}

func (c *Credentials) DeleteOne(ctx context.Context, id string) error {
	return c.client.Do(ctx, http.MethodDelete, "/credentials/"+url.PathEscape(id), nil, nil)
}
