package schemas

import (
	"encoding/json"
	"time"
)

const (
	CREDENTIAL_TYPE_CHATGPT   = "CHATGPT"
	CREDENTIAL_PAYLOAD_OPENAI = "openAiApi"
)

type Credential struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CredentialForm espelha os campos do formulário de credenciais.
type CredentialForm struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type" validate:"required"`
	APIKey  string `json:"apiKey,omitempty"`
	RawJSON string `json:"rawJson,omitempty"`
}

type CredentialPayload struct {
	Name string         `json:"name"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}
