package utils

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"adelanta/internal/domain/entity"
	"adelanta/internal/utils/apierror"
)

func GetEmployeeFromContext(c echo.Context) (*entity.Employee, apierror.ErrorResponse) {
	val := c.Get("employee")
	if val == nil {
		log.Warnf("route %s attempted to read nil employee from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	emp, ok := val.(*entity.Employee)
	if !ok {
		log.Warnf("expected employee type at 'employee' context key, got %v", val)
		return nil, apierror.InternalServerError
	}
	return emp, nil
}
