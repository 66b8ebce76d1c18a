package settings

import (
	"context"
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type API interface {
	Get(ctx context.Context) (*schemas.SystemConfig, error)
	Save(ctx context.Context, config schemas.SystemConfig) (*schemas.SystemConfig, error)
	UploadImage(ctx context.Context, field string, image schemas.ImageUpload) (string, error)
}

// As rotas deste pacote ficam atrás de middlewares.RequireAdmin.
type Handler struct {
	api    API
	logger *zap.SugaredLogger
}

func NewHandler(api API, logger *zap.SugaredLogger) *Handler {
	return &Handler{api: api, logger: logger}
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	config, err := h.api.Get(r.Context())
	if err != nil {
		h.logger.Errorw("failed to load system config", "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar configurações")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}
	utils.SendResponse(w, http.StatusOK, "", config, 0)
}

// UpdateOne envia primeiro cada imagem nova em base64 e troca o campo pela
// URL devolvida; só então salva o objeto de configuração.
func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	input := schemas.SystemConfigInput{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "JSON inválido", nil, utils.INVALID_REQUEST_DATA)
		return
	}

	config := input.Config
	uploads := []struct {
		field  string
		image  *schemas.ImageUpload
		target *string
	}{
		{"logo", input.Logo, &config.Logo},
		{"favicon", input.Favicon, &config.Favicon},
		{"loginBackground", input.LoginBackground, &config.LoginBackground},
	}
	for _, upload := range uploads {
		if upload.image == nil || len(upload.image.Content) == 0 {
			continue
		}
		url, err := h.api.UploadImage(r.Context(), upload.field, *upload.image)
		if err != nil {
			h.logger.Errorw("failed to upload system config image", "field", upload.field, "error", err)
			status, msg := backend.StatusFor(err, "Erro ao enviar imagem")
			utils.SendResponse(w, status, msg, nil, utils.CANNOT_UPLOAD_IMAGE)
			return
		}
		*upload.target = url
	}

	saved, err := h.api.Save(r.Context(), config)
	if err != nil {
		h.logger.Errorw("failed to save system config", "error", err)
		status, msg := backend.StatusFor(err, "Erro ao salvar configurações")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusOK, "Configurações salvas", saved, 0)
}
