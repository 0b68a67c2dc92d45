package httpx

import (
	"net/http"

	"github.com/benjaminBJ/taller-api-rest/pkg/slogx"
)

const (
	MsgNoPermission = "user has no permission for this operation"
	MsgInvalidUser  = "not a valid user"
)

// RoleCheck maps the authenticated principal onto its role. known is false
// for a principal without a role; allowed says whether the role may proceed.
type RoleCheck func(user string) (known, allowed bool)

// RequireRole admits the request only when check allows the authenticated
// user. Unknown principals and known ones lacking permission are both
// answered with 401 and a JSON message.
func RequireRole(check RoleCheck) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := UserFromContext(r.Context())

			switch known, allowed := check(user); {
			case allowed:
				next.ServeHTTP(w, r)
			case known:
				slogx.FromContext(r.Context()).Info("role denied", "user", user, "path", r.URL.Path)
				WriteMessage(w, http.StatusUnauthorized, MsgNoPermission)
			default:
				WriteMessage(w, http.StatusUnauthorized, MsgInvalidUser)
			}
		})
	}
}
