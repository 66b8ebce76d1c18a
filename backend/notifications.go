package backend

import (
	"context"
	"dashboard/schemas"
	"net/http"
	"net/url"
)

type Notifications struct {
	client *Client
}

func NewNotifications(client *Client) *Notifications {
	return &Notifications{client: client}
}

func (n *Notifications) GetAll(ctx context.Context, userID string, unreadOnly bool) ([]schemas.Notification, error) {
	query := url.Values{}
	query.Set("userId", userID)
	if unreadOnly {
		query.Set("unread", "true")
	}
	notifications := []schemas.Notification{}
	if err := n.client.Do(ctx, http.MethodGet, "/notifications?"+query.Encode(), nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	return n.client.Do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

func (n *Notifications) MarkAllRead(ctx context.Context, userID string) error {
	body := map[string]string{"userId": userID}
	return n.client.Do(ctx, http.MethodPatch, "/notifications/read-all", body, nil)
}

func (n *Notifications) Dismiss(ctx context.Context, id string) error {
	return n.client.Do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/dismiss", nil, nil)
}
