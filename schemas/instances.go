package schemas

import "time"

type ConnectionState string

const (
	CONNECTION_CONNECTED    ConnectionState = "CONNECTED"
	CONNECTION_CONNECTING   ConnectionState = "CONNECTING"
	CONNECTION_DISCONNECTED ConnectionState = "DISCONNECTED"
	CONNECTION_ERROR        ConnectionState = "ERROR"
)

type EvolutionInstance struct {
	ID              string          `json:"id"`
	Name            string          `json:"instanceName"`
	ConnectionState ConnectionState `json:"connectionState"`
	ServerURL       string          `json:"serverUrl"`
	APIKey          string          `json:"apiKey,omitempty"`
	ConfigIAID      string          `json:"configIaId,omitempty"`
	PhoneNumber     string          `json:"phoneNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type EvolutionInstanceInput struct {
	Name       string `json:"instanceName" validate:"required"`
	ServerURL  string `json:"serverUrl" validate:"required,http_url"`
	APIKey     string `json:"apiKey" validate:"required"`
	ConfigIAID string `json:"configIaId,omitempty"`
}

// ConnectResult é a resposta do gateway de WhatsApp: QR em base64 ou código de pareamento.
type ConnectResult struct {
	Base64      string `json:"base64,omitempty"`
	Code        string `json:"code,omitempty"`
	PairingCode string `json:"pairingCode,omitempty"`
}
