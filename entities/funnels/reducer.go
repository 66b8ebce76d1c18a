package funnels

import (
	"dashboard/schemas"
	"encoding/json"
	"fmt"
)

// ApplyEvent aplica um evento ao vivo sobre uma cópia do funil e devolve a
// cópia e se algo mudou. Eventos de outro funil não alteram nada. Não existe
// número de sequência: o último evento aplicado vence.
func ApplyEvent(funnel *schemas.Funnel, evt schemas.FunnelEvent) (*schemas.Funnel, bool, error) {
	if funnel == nil || evt.FunnelID != funnel.ID {
		return funnel, false, nil
	}

	switch evt.Event {
	case schemas.FUNNEL_EVENT_LEAD_CREATED,
		schemas.FUNNEL_EVENT_LEAD_UPDATED,
		schemas.FUNNEL_EVENT_LEAD_STAGE_CHANGED,
		schemas.FUNNEL_EVENT_LEAD_DELETED:
	default:
		return funnel, false, nil
	}

	lead := schemas.Lead{}
	if err := json.Unmarshal(evt.Data, &lead); err != nil {
		return funnel, false, fmt.Errorf("evento %s com lead inválido: %w", evt.Event, err)
	}
	if lead.ID == "" {
		return funnel, false, fmt.Errorf("evento %s sem id de lead", evt.Event)
	}

	next := cloneFunnel(funnel)
	changed := false

	switch evt.Event {
	case schemas.FUNNEL_EVENT_LEAD_CREATED:
		for i := range next.Stages {
			if next.Stages[i].ID == lead.StageID {
				next.Stages[i].Leads = append(next.Stages[i].Leads, lead)
				changed = true
				break
			}
		}

	case schemas.FUNNEL_EVENT_LEAD_UPDATED, schemas.FUNNEL_EVENT_LEAD_STAGE_CHANGED:
		for i := range next.Stages {
			for j := range next.Stages[i].Leads {
				if next.Stages[i].Leads[j].ID == lead.ID {
					next.Stages[i].Leads[j] = lead
					changed = true
				}
			}
		}

	case schemas.FUNNEL_EVENT_LEAD_DELETED:
		for i := range next.Stages {
			kept := next.Stages[i].Leads[:0]
			for _, current := range next.Stages[i].Leads {
				if current.ID == lead.ID {
					changed = true
					continue
				}
				kept = append(kept, current)
			}
			next.Stages[i].Leads = kept
		}
	}

	if !changed {
		return funnel, false, nil
	}
	return next, true, nil
}

func cloneFunnel(funnel *schemas.Funnel) *schemas.Funnel {
	next := *funnel
	next.Stages = make([]schemas.Stage, len(funnel.Stages))
	for i, stage := range funnel.Stages {
		stage.Leads = append([]schemas.Lead(nil), stage.Leads...)
		next.Stages[i] = stage
	}
	if funnel.Stats != nil {
		stats := *funnel.Stats
		next.Stats = &stats
	}
	return &next
}
