package instances

import (
	"context"
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type API interface {
	GetAll(ctx context.Context) ([]schemas.EvolutionInstance, error)
	GetOne(ctx context.Context, id string) (*schemas.EvolutionInstance, error)
	CreateOne(ctx context.Context, input schemas.EvolutionInstanceInput) (*schemas.EvolutionInstance, error)
	DeleteOne(ctx context.Context, id string) error
	UpdateState(ctx context.Context, id string, state schemas.ConnectionState) error
}

type Connector interface {
	Connect(ctx context.Context, instance schemas.EvolutionInstance) (*schemas.ConnectResult, error)
}

type Handler struct {
	api        API
	gateway    Connector
	connecting *Connecting
	validate   *validator.Validate
	logger     *zap.SugaredLogger
}

func NewHandler(api API, gateway Connector, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		api:        api,
		gateway:    gateway,
		connecting: NewConnecting(),
		validate:   validator.New(),
		logger:     logger,
	}
}

type instanceView struct {
	schemas.EvolutionInstance
	Connecting bool `json:"connecting"`
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	instances, err := h.api.GetAll(r.Context())
	if err != nil {
		h.logger.Errorw("failed to list evolution instances", "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar instâncias")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}

	views := make([]instanceView, 0, len(instances))
	for _, instance := range instances {
		instance.APIKey = ""
		views = append(views, instanceView{EvolutionInstance: instance, Connecting: h.connecting.Has(instance.ID)})
	}
	utils.SendResponse(w, http.StatusOK, "", views, 0)
}

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	input := schemas.EvolutionInstanceInput{}
	if err := utils.DecodeAndValidate(r, &input, h.validate); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Dados da instância inválidos: "+err.Error(), nil, utils.INVALID_REQUEST_DATA)
		return
	}

	instance, err := h.api.CreateOne(r.Context(), input)
	if err != nil {
		h.logger.Errorw("failed to create evolution instance", "name", input.Name, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao criar instância")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	instance.APIKey = ""
	utils.SendResponse(w, http.StatusCreated, "Instância criada", instance, 0)
}

func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.api.DeleteOne(r.Context(), id); err != nil {
		h.logger.Errorw("failed to delete evolution instance", "instance_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao excluir instância")
		utils.SendResponse(w, status, msg, nil, utils.BACKEND_REJECTED_REQUEST)
		return
	}
	utils.SendResponse(w, http.StatusOK, "Instância excluída", nil, 0)
}

// Connect pede o QR code (ou código de pareamento) ao gateway. Uma segunda
// conexão para a mesma instância enquanto a primeira roda recebe 409.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.connecting.TryStart(id) {
		utils.SendResponse(w, http.StatusConflict, "Conexão já em andamento para esta instância", nil, 0)
		return
	}
	defer h.connecting.Done(id)

	instance, err := h.api.GetOne(r.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to load evolution instance", "instance_id", id, "error", err)
		status, msg := backend.StatusFor(err, "Erro ao carregar instância")
		utils.SendResponse(w, status, msg, nil, utils.CANNOT_REACH_BACKEND)
		return
	}

	result, err := h.gateway.Connect(r.Context(), *instance)
	if err != nil {
		var connectErr *ConnectError
		if errors.As(err, &connectErr) {
			utils.SendResponse(w, connectErr.HTTPStatus(), connectErr.UserMessage(), nil, utils.CANNOT_REACH_WHATSAPP_GATEWAY)
			return
		}
		utils.SendResponse(w, http.StatusBadGateway, "Erro ao conectar a instância", nil, utils.CANNOT_REACH_WHATSAPP_GATEWAY)
		return
	}

	if err := h.api.UpdateState(r.Context(), id, schemas.CONNECTION_CONNECTING); err != nil {
		h.logger.Warnw("failed to update instance state", "instance_id", id, "error", err)
	}
	utils.SendResponse(w, http.StatusOK, "", result, 0)
}
