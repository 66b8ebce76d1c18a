package schemas

import "encoding/json"

const (
	FUNNEL_EVENT_LEAD_CREATED       = "funnel:lead:created"
	FUNNEL_EVENT_LEAD_UPDATED       = "funnel:lead:updated"
	FUNNEL_EVENT_LEAD_STAGE_CHANGED = "funnel:lead:stage_changed"
	FUNNEL_EVENT_LEAD_DELETED       = "funnel:lead:deleted"
)

// FunnelEvent é o envelope entregue pelo canal de atualização ao vivo do backend.
type FunnelEvent struct {
	FunnelID string          `json:"funnelId"`
	Event    string          `json:"event"`
	Data     json.RawMessage `json:"data"`
}

// FunnelWSMessage é o que vai para os navegadores depois de aplicar um evento.
type FunnelWSMessage struct {
	Action string  `json:"action"`
	Board  *Funnel `json:"board"`
	Event  string  `json:"event,omitempty"`
}
