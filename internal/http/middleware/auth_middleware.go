package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"adelanta/internal/domain/entity"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type EmployeeRepository interface {
	FindActiveBySub(sub string) (*entity.Employee, error)
}

type AuthMiddlewareConfig struct {
	EmployeeRepo EmployeeRepository
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			emp, err := cfg.EmployeeRepo.FindActiveBySub(tokenData.Sub)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if emp == nil {
				// Employee deleted in DB but still has a valid token???
				return c.JSON(http.StatusUnauthorized, apierror.IDPUserNotFoundError)
			}

			if !emp.IsActive() {
				return c.JSON(http.StatusForbidden, apierror.InactiveEmployeeError)
			}

			c.Set("employee", emp)
			c.Set("sub", tokenData.Sub)
			return next(c)
		}
	}
}
