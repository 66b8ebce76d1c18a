package schemas

import "time"

type FunnelStats struct {
	TotalLeads int     `json:"totalLeads"`
	TotalValue float64 `json:"totalValue"`
	WonLeads   int     `json:"wonLeads"`
	LostLeads  int     `json:"lostLeads"`
}

type ConfigIA struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Stage struct {
	ID       string `json:"id"`
	FunnelID string `json:"funnelId,omitempty"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
	Color    string `json:"color,omitempty"`
	IsFixed  bool   `json:"isFixed"`
	Leads    []Lead `json:"leads"`
}

type Funnel struct {
	ID                    string       `json:"id"`
	Name                  string       `json:"name"`
	Description           string       `json:"description,omitempty"`
	IsActive              bool         `json:"isActive"`
	UserID                string       `json:"userId,omitempty"`
	ConfigIAID            string       `json:"configIaId,omitempty"`
	ConfigIA              *ConfigIA    `json:"configIa,omitempty"`
	KommoPipelineID       string       `json:"kommoPipelineId,omitempty"`
	KommoPipelineName     string       `json:"kommoPipelineName,omitempty"`
	RDStationPipelineID   string       `json:"rdStationPipelineId,omitempty"`
	RDStationPipelineName string       `json:"rdStationPipelineName,omitempty"`
	Stages                []Stage      `json:"stages"`
	Stats                 *FunnelStats `json:"stats,omitempty"`
	CreatedAt             time.Time    `json:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt"`
}

type StageInput struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color,omitempty"`
	Order int    `json:"order" validate:"gte=0"`
}

type FunnelInput struct {
	Name                  string       `json:"name" validate:"required"`
	Description           string       `json:"description,omitempty"`
	IsActive              *bool        `json:"isActive,omitempty"`
	ConfigIAID            string       `json:"configIaId,omitempty"`
	KommoPipelineID       string       `json:"kommoPipelineId,omitempty"`
	KommoPipelineName     string       `json:"kommoPipelineName,omitempty"`
	RDStationPipelineID   string       `json:"rdStationPipelineId,omitempty"`
	RDStationPipelineName string       `json:"rdStationPipelineName,omitempty"`
	ImportDeals           bool         `json:"importDeals,omitempty"`
	Stages                []StageInput `json:"stages,omitempty" validate:"dive"`
}

type MoveLeadInput struct {
	StageID string `json:"stageId" validate:"required"`
	Order   int    `json:"order" validate:"gte=0"`
}
