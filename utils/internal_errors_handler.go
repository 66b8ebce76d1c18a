package utils

import "fmt"

const (
	_ = iota
	INVALID_REQUEST_DATA
	CANNOT_REACH_BACKEND
	BACKEND_REJECTED_REQUEST
	CANNOT_CONNECT_TO_MONGODB
	CANNOT_INSERT_FUNNEL_HISTORY_TO_MONGODB
	CANNOT_FIND_FUNNEL_HISTORY_IN_MONGODB
	CANNOT_CONNECT_TO_REDIS
	CANNOT_READ_PREFERENCES
	CANNOT_SAVE_PREFERENCES
	CANNOT_UPGRADE_WEBSOCKET
	CANNOT_UPLOAD_IMAGE
	CANNOT_REACH_WHATSAPP_GATEWAY
	WORKSPACE_AUTOMATION_FAILED
	FOLLOWUP_STEPS_NOT_INITIALIZED
	CANNOT_DELETE_FIXED_STAGE
	MISSING_CONFIGURATION
)

func SendInternalError(internalErrorCode int) string {
	return fmt.Sprintf("Ocorreu um erro interno no servidor. Por favor, tente novamente mais tarde (Cod: %d)", internalErrorCode)
}
