package credentials

import (
	"dashboard/schemas"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingName    = errors.New("nome é obrigatório")
	ErrMissingType    = errors.New("tipo é obrigatório")
	ErrMissingAPIKey  = errors.New("API key é obrigatória")
	ErrInvalidRawJSON = errors.New("dados devem ser um objeto JSON válido")
)

// Validate faz apenas checagens de presença e de parse do JSON.
func Validate(form schemas.CredentialForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(form.Type) == "" {
		return ErrMissingType
	}
	if form.Type == schemas.CREDENTIAL_TYPE_CHATGPT {
		if strings.TrimSpace(form.APIKey) == "" {
			return ErrMissingAPIKey
		}
		return nil
	}
	if _, err := parseRaw(form.RawJSON); err != nil {
		return err
	}
	return nil
}

func parseRaw(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidRawJSON
	}
	data := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRawJSON, err)
	}
	return data, nil
}

// BuildPayload monta o corpo enviado ao serviço de credenciais. CHATGPT vira
// o formato do OpenAI; os demais tipos levam o JSON digitado como data.
func BuildPayload(form schemas.CredentialForm) (schemas.CredentialPayload, error) {
	if err := Validate(form); err != nil {
		return schemas.CredentialPayload{}, err
	}

	if form.Type == schemas.CREDENTIAL_TYPE_CHATGPT {
		return schemas.CredentialPayload{
			Name: strings.TrimSpace(form.Name),
			Type: schemas.CREDENTIAL_PAYLOAD_OPENAI,
			Data: map[string]any{"apiKey": form.APIKey},
		}, nil
	}

	data, err := parseRaw(form.RawJSON)
	if err != nil {
		return schemas.CredentialPayload{}, err
	}
	return schemas.CredentialPayload{
		Name: strings.TrimSpace(form.Name),
		Type: form.Type,
		Data: data,
	}, nil
}

// Preview devolve o payload indentado, como aparece na aba de visualização.
func Preview(form schemas.CredentialForm) (string, error) {
	payload, err := BuildPayload(form)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
