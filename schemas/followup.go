package schemas

import "time"

type FollowUpStepType string

const (
	FOLLOWUP_STEP_SYSTEM   FollowUpStepType = "system"
	FOLLOWUP_STEP_FOLLOWUP FollowUpStepType = "followup"
)

type LeadFlowStatus string

const (
	LEAD_FLOW_PENDING   LeadFlowStatus = "pending"
	LEAD_FLOW_ACTIVE    LeadFlowStatus = "active"
	LEAD_FLOW_PAUSED    LeadFlowStatus = "paused"
	LEAD_FLOW_WON       LeadFlowStatus = "won"
	LEAD_FLOW_LOST      LeadFlowStatus = "lost"
	LEAD_FLOW_COMPLETED LeadFlowStatus = "completed"
)

type FollowUpAgent struct {
	ID                string    `json:"id,omitempty"`
	FunnelID          string    `json:"funnelId"`
	Name              string    `json:"name"`
	IsActive          bool      `json:"isActive"`
	Model             string    `json:"model"`
	Temperature       float64   `json:"temperature"`
	MaxTokens         int       `json:"maxTokens"`
	SystemPrompt      string    `json:"systemPrompt,omitempty"`
	MessageTemplate   string    `json:"messageTemplate,omitempty"`
	WorkingHoursStart string    `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd   string    `json:"workingHoursEnd,omitempty"`
	WorkingDays       []int     `json:"workingDays,omitempty"`
	Timezone          string    `json:"timezone,omitempty"`
	EvolutionInstance string    `json:"evolutionInstanceId,omitempty"`
	MaxFollowUps      int       `json:"maxFollowUps,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type FollowUpStep struct {
	ID              string           `json:"id"`
	FunnelID        string           `json:"funnelId,omitempty"`
	Name            string           `json:"name"`
	Order           int              `json:"order"`
	DelayDays       int              `json:"delayDays"`
	DelayHours      int              `json:"delayHours"`
	MessageTemplate string           `json:"messageTemplate,omitempty"`
	IsAutomatic     bool             `json:"isAutomatic"`
	IsFixed         bool             `json:"isFixed"`
	Color           string           `json:"color,omitempty"`
	Type            FollowUpStepType `json:"type"`
}

type FollowUpStepInput struct {
	Name            string `json:"name" validate:"required"`
	DelayDays       int    `json:"delayDays" validate:"gte=0"`
	DelayHours      int    `json:"delayHours" validate:"gte=0,lte=23"`
	MessageTemplate string `json:"messageTemplate,omitempty"`
	IsAutomatic     bool   `json:"isAutomatic"`
	Color           string `json:"color,omitempty"`
}

type LeadInFlow struct {
	ID             string         `json:"id"`
	LeadID         string         `json:"leadId"`
	FunnelID       string         `json:"funnelId"`
	CurrentStepID  string         `json:"currentStepId"`
	Lead           *Lead          `json:"lead,omitempty"`
	Status         LeadFlowStatus `json:"status"`
	FollowUpCount  int            `json:"followUpCount"`
	NextFollowUpAt *time.Time     `json:"nextFollowUpAt,omitempty"`
	LastFollowUpAt *time.Time     `json:"lastFollowUpAt,omitempty"`
	EnteredAt      time.Time      `json:"enteredAt"`
}

type FollowUpHistory struct {
	ID      string    `json:"id"`
	LeadID  string    `json:"leadId"`
	StepID  string    `json:"stepId,omitempty"`
	Message string    `json:"message"`
	Status  string    `json:"status"`
	SentAt  time.Time `json:"sentAt"`
}

// FollowUpBoard é o estado completo do quadro: etapas ordenadas e leads no fluxo.
type FollowUpBoard struct {
	FunnelID string         `json:"funnelId"`
	Steps    []FollowUpStep `json:"steps"`
	Leads    []LeadInFlow   `json:"leads"`
}
