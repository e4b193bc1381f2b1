package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type EmployeeService interface {
	GetEmployees(actor *entity.Employee) ([]*contract.EmployeeResponse, apierror.ErrorResponse)
	GetEmployee(actor *entity.Employee, id int64) (*contract.EmployeeResponse, apierror.ErrorResponse)
	CreateEmployee(ctx context.Context, actor *entity.Employee, req *contract.CreateEmployeeRequest) (*contract.EmployeeResponse, apierror.ErrorResponse)
	UpdateEmployee(actor *entity.Employee, id int64, req *contract.UpdateEmployeeRequest) (*contract.EmployeeResponse, apierror.ErrorResponse)
	Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse)
	ConfirmSignup(ctx context.Context, req *contract.ConfirmSignupRequest) apierror.ErrorResponse
	ResendConfirmation(ctx context.Context, req *contract.ResendConfirmRequest) apierror.ErrorResponse
}

type DefaultEmployeeRoute struct {
	EmployeeService EmployeeService
}

func NewEmployeeDefault(employeeService EmployeeService) *DefaultEmployeeRoute {
	return &DefaultEmployeeRoute{EmployeeService: employeeService}
}

func (h *DefaultEmployeeRoute) GetEmployees(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	employees, apierr := h.EmployeeService.GetEmployees(emp)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"employees": employees}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultEmployeeRoute) GetEmployee(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	target, apierr := h.EmployeeService.GetEmployee(emp, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, target)
}

func (h *DefaultEmployeeRoute) CreateEmployee(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	created, apierr := h.EmployeeService.CreateEmployee(c.Request().Context(), emp, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *DefaultEmployeeRoute) UpdateEmployee(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	updated, apierr := h.EmployeeService.UpdateEmployee(emp, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *DefaultEmployeeRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	auth, apierr := h.EmployeeService.Login(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, auth)
}

func (h *DefaultEmployeeRoute) ConfirmSignup(c echo.Context) error {
	var req contract.ConfirmSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := h.EmployeeService.ConfirmSignup(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DefaultEmployeeRoute) ResendConfirmation(c echo.Context) error {
	var req contract.ResendConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := h.EmployeeService.ResendConfirmation(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
