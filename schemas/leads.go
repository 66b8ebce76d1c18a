package schemas

import "time"

type LeadPriority string

const (
	LEAD_PRIORITY_LOW    LeadPriority = "low"
	LEAD_PRIORITY_MEDIUM LeadPriority = "medium"
	LEAD_PRIORITY_HIGH   LeadPriority = "high"
)

type Lead struct {
	ID            string       `json:"id"`
	StageID       string       `json:"stageId"`
	FunnelID      string       `json:"funnelId,omitempty"`
	Name          string       `json:"name"`
	Email         string       `json:"email,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	WhatsappJID   string       `json:"whatsappJid,omitempty"`
	ProfilePicURL string       `json:"profilePicUrl,omitempty"`
	Value         float64      `json:"value"`
	Priority      LeadPriority `json:"priority,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	AIContext     string       `json:"aiContext,omitempty"`
	Order         int          `json:"order"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type LeadInput struct {
	FunnelID    string       `json:"funnelId" validate:"required"`
	StageID     string       `json:"stageId" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Email       string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string       `json:"phone,omitempty"`
	WhatsappJID string       `json:"whatsappJid,omitempty"`
	Value       float64      `json:"value" validate:"gte=0"`
	Priority    LeadPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Tags        []string     `json:"tags,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	AIContext   string       `json:"aiContext,omitempty"`
}

// LeadMutation é a resposta das mutações de lead: o lead e as estatísticas
// do funil buscadas de novo no backend.
type LeadMutation struct {
	Lead  *Lead        `json:"lead,omitempty"`
	Stats *FunnelStats `json:"stats,omitempty"`
}
