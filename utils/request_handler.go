package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// DecodeAndValidate lê o corpo JSON em v e roda as tags validate.
func DecodeAndValidate(r *http.Request, v any, validate *validator.Validate) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("json inválido: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}
