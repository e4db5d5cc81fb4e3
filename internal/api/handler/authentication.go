package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/usecases/authenticating"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
	"github.com/vfg2006/chai-ledger/pkg/middleware"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.LoginUser(r.Context(), req.Username, req.Password)
		if err != nil {
			logrus.WithField("user_name", req.Username).WithError(err).Warn("handler: login recusado")
			handleAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// SetPassword troca a senha do próprio usuário logado
func SetPassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SetPassword")

		username := httprouter.ParamsFromContext(r.Context()).ByName("username")

		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}
		if claims.Username != username {
			apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Não é permitido alterar a senha de outro usuário", nil)
			return
		}

		var req SetPasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := service.SetPassword(r.Context(), username, req.Password); err != nil {
			logrus.WithError(err).Error("handler: erro ao alterar senha")
			handleAuthError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)
	case errors.Is(err, authenticating.ErrUserNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao autenticar", nil)
	}
}
