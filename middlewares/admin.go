package middlewares

import (
	"dashboard/utils"
	"net/http"
)

type AccessDenied struct {
	AccessDenied bool   `json:"accessDenied"`
	Redirect     string `json:"redirect"`
}

// RequireAdmin só deixa passar quem tem is_admin nos metadados públicos
// devolvidos pelo provedor de autenticação. Nenhuma chamada de dados é feita
// para quem não passa.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.PublicMetadata.IsAdmin {
			utils.SendResponse(w, http.StatusForbidden, "Acesso negado: apenas administradores", AccessDenied{
				AccessDenied: true,
				Redirect:     "/",
			}, 0)
			return
		}
		next.ServeHTTP(w, r)
	})
}
