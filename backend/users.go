package backend

import (
	"context"
	"dashboard/schemas"
	"net/http"
	"net/url"
)

type Users struct {
	client *Client
}

func NewUsers(client *Client) *Users {
	return &Users{client: client}
}

func (u *Users) GetAll(ctx context.Context) ([]schemas.User, error) {
	users := []schemas.User{}
	if err := u.client.Do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *Users) UpdateOne(ctx context.Context, id string, input schemas.UserUpdateInput) (*schemas.User, error) {
	user := &schemas.User{}
	if err := u.client.Do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), input, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *Users) DeleteOne(ctx context.Context, id string) error {
	return u.client.Do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}
