package integrations

import (
	"dashboard/utils"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RDSTATION_AUTHORIZE_URL = "https://api.rd.services/auth/dialog"

type Handler struct {
	appURL   string
	clientID string
	logger   *zap.SugaredLogger
}

func NewHandler(appURL, clientID string, logger *zap.SugaredLogger) *Handler {
	return &Handler{appURL: strings.TrimRight(appURL, "/"), clientID: clientID, logger: logger}
}

func (h *Handler) RDStationRedirectURI() string {
	return h.appURL + "/integrations/rdstation/callback"
}

// RDStationAuthorizeURL monta a URL de autorização OAuth; state evita callbacks forjados.
func (h *Handler) RDStationAuthorizeURL(state string) string {
	query := url.Values{}
	query.Set("client_id", h.clientID)
	query.Set("redirect_uri", h.RDStationRedirectURI())
	query.Set("state", state)
	return RDSTATION_AUTHORIZE_URL + "?" + query.Encode()
}

func (h *Handler) RDStationAuthorize(w http.ResponseWriter, r *http.Request) {
	if h.clientID == "" || h.appURL == "" {
		utils.SendResponse(w, http.StatusServiceUnavailable, "Integração com RD Station não configurada", nil, utils.MISSING_CONFIGURATION)
		return
	}

	state := uuid.NewString()
	utils.SendResponse(w, http.StatusOK, "", map[string]string{
		"url":         h.RDStationAuthorizeURL(state),
		"redirectUri": h.RDStationRedirectURI(),
		"state":       state,
	}, 0)
}
