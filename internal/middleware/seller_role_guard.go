package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rugue/FullStackEcommerce/internal/domain/model"
)

// SellerRoleGuard allows sellers and admins through; regular users are
// rejected. Used on product mutation routes.
func SellerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || rawRole == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			switch model.ParseRole(rawRole) {
			case model.RoleSeller, model.RoleAdmin:
				return next(c)
			default:
				return c.JSON(http.StatusForbidden, errorJSON("seller only"))
			}
		}
	}
}
