package middlewares

import (
	"context"
	"dashboard/backend"
	"dashboard/schemas"
	"dashboard/utils"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type contextKey string

const UserContextKey = contextKey("dashboard_user")

type UserCache interface {
	Get(ctx context.Context, token string) (*schemas.User, bool)
	Set(ctx context.Context, token string, user *schemas.User)
}

func UserFromContext(ctx context.Context) (schemas.User, bool) {
	user, ok := ctx.Value(UserContextKey).(schemas.User)
	return user, ok
}

// TokenFromRequest lê o Authorization ou, para websockets do navegador, o
// parâmetro token da query.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get("Authorization"); token != "" {
		return token
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return "Bearer " + token
	}
	return ""
}

type Authenticator struct {
	authURL string
	client  *http.Client
	cache   UserCache
	logger  *zap.SugaredLogger
}

func NewAuthenticator(authURL string, cache UserCache, logger *zap.SugaredLogger) *Authenticator {
	return &Authenticator{
		authURL: strings.TrimRight(authURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

func (a *Authenticator) fetchUser(ctx context.Context, token string) (*schemas.User, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.authURL+"/api/user", nil)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("criando requisição de autenticação: %w", err)
	}
	req.Header.Set("Authorization", token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, http.StatusBadGateway, fmt.Errorf("conectando na api de autenticação: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, http.StatusUnauthorized, fmt.Errorf("autenticação respondeu %d", resp.StatusCode)
	}

	user := &schemas.User{}
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil || user.ID == "" || user.Email == "" {
		return nil, http.StatusUnauthorized, fmt.Errorf("usuário inválido retornado pela autenticação")
	}
	return user, http.StatusOK, nil
}

// Auth valida o token no provedor de autenticação a cada requisição (com cache
// curto) e coloca o usuário e o token no contexto.
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			utils.SendResponse(w, http.StatusUnauthorized, "Token não informado", nil, 0)
			return
		}

		user, cached := a.cache.Get(r.Context(), token)
		if !cached {
			fetched, status, err := a.fetchUser(r.Context(), token)
			if err != nil {
				a.logger.Warnw("authentication failed", "status", status, "error", err)
				message := "Token inválido ou usuário não autenticado"
				if status == http.StatusBadGateway {
					message = "Erro ao conectar na API de autenticação"
				}
				utils.SendResponse(w, status, message, nil, 0)
				return
			}
			user = fetched
			a.cache.Set(r.Context(), token, user)
		}

		ctx := context.WithValue(r.Context(), UserContextKey, *user)
		ctx = backend.WithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
