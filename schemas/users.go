package schemas

import "time"

type PublicMetadata struct {
	IsAdmin bool `json:"is_admin"`
}

type User struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	PublicMetadata PublicMetadata `json:"publicMetadata"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastSignInAt   *time.Time     `json:"lastSignInAt,omitempty"`
}

type UserUpdateInput struct {
	Name    string `json:"name,omitempty"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}
