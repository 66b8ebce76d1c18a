package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type FunnelsHistory struct {
	ID            bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RelatedUser   string        `json:"related_user,omitempty" bson:"related_user,omitempty"`
	RelatedFunnel string        `json:"related_funnel,omitempty" bson:"related_funnel,omitempty"`
	RelatedLead   string        `json:"related_lead,omitempty" bson:"related_lead,omitempty"`
	Action        string        `json:"action,omitempty" bson:"action,omitempty"`
	Details       string        `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at,omitempty"`
}
