package schemas

import "time"

type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Priority    string    `json:"priority"`
	IsRead      bool      `json:"isRead"`
	IsDismissed bool      `json:"isDismissed"`
	PlaySound   bool      `json:"playSound,omitempty"`
	ActionURL   string    `json:"actionUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
