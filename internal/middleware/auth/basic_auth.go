package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
)

const DefaultRealm = "Admin Area"

// BasicAuth пропускает запрос дальше только с верными логином и паролем.
// Пустой логин в конфиге закрывает доступ целиком.
func BasicAuth(realm, username, password string) func(http.Handler) http.Handler {
	if realm == "" {
		realm = DefaultRealm
	}
	challenge := fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || username == "" || !equal(user, username) || !equal(pass, password) {
				w.Header().Set("WWW-Authenticate", challenge)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
