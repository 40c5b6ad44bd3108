package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/apiErrors"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

// Rotas liberadas sem token de serviço
var publicPaths = map[string]struct{}{
	"/healthcheck": {},
}

// ServiceToken valida o token estático de serviço-para-serviço. A
// autenticação de usuário final (OAuth do marketplace) acontece no
// dashboard, fora deste motor.
func ServiceToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// Token vazio desabilita a checagem (ambiente local)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"path":   r.URL.Path,
					"method": r.Method,
				}).Warn("Token de serviço inválido")

				apiErrors.WriteError(w, apiErrors.ErrInvalidServiceToken, "token de serviço inválido", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
