package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/auth"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a subtree to sessions opened through the admin login.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, auth.ErrInvalidToken.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
