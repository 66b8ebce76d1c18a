package utils

import (
	"dashboard/schemas"
	"encoding/json"
	"net/http"
)

func SendResponse(w http.ResponseWriter, statusCode int, message string, data any, internalErrorCode int) {
	success := statusCode < http.StatusBadRequest

	if internalErrorCode != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(schemas.ApiResponse{
			Success: success,
			Message: message,
			Error:   SendInternalError(internalErrorCode),
		})
		return
	}

	if (message == "") && (data == nil) {
		w.WriteHeader(statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(schemas.ApiResponse{
		Success: success,
		Data:    data,
		Message: message,
	})
}

// SendRedirect responde um erro que deve tirar o usuário da página atual.
func SendRedirect(w http.ResponseWriter, statusCode int, message string, location string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(schemas.ApiResponse{
		Success:  false,
		Message:  message,
		Redirect: location,
	})
}
