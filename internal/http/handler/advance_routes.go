package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"adelanta/internal/contract"
	"adelanta/internal/domain/advance"
	"adelanta/internal/domain/entity"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type AdvanceService interface {
	Calculate(actor *entity.Employee, req *contract.AdvanceCalculationRequest) (*advance.Quote, apierror.ErrorResponse)
	Create(actor *entity.Employee, req *contract.AdvanceCreateRequest) (*contract.AdvanceResponse, apierror.ErrorResponse)
	UpdateStatus(actor *entity.Employee, advanceID int64, req *contract.AdvanceStatusRequest) (*contract.AdvanceResponse, apierror.ErrorResponse)
	GetAdvance(actor *entity.Employee, advanceID int64) (*contract.AdvanceResponse, apierror.ErrorResponse)
	GetAdvances(actor *entity.Employee) ([]*contract.AdvanceResponse, apierror.ErrorResponse)
	GetReasons() ([]*contract.RequestReasonResponse, apierror.ErrorResponse)
	GetMonthlySummary(actor *entity.Employee, year int) ([]advance.MonthTotal, apierror.ErrorResponse)
}

type DefaultAdvanceRoute struct {
	AdvanceService AdvanceService
}

func NewAdvanceDefault(advanceService AdvanceService) *DefaultAdvanceRoute {
	return &DefaultAdvanceRoute{AdvanceService: advanceService}
}

func (h *DefaultAdvanceRoute) Calculate(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.AdvanceCalculationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	quote, apierr := h.AdvanceService.Calculate(emp, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, quote)
}

func (h *DefaultAdvanceRoute) Create(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.AdvanceCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	adv, apierr := h.AdvanceService.Create(emp, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, adv)
}

func (h *DefaultAdvanceRoute) UpdateStatus(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.AdvanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	adv, apierr := h.AdvanceService.UpdateStatus(emp, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, adv)
}

func (h *DefaultAdvanceRoute) GetAdvance(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	adv, apierr := h.AdvanceService.GetAdvance(emp, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, adv)
}

func (h *DefaultAdvanceRoute) GetAdvances(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	advances, apierr := h.AdvanceService.GetAdvances(emp)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"advances": advances}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultAdvanceRoute) GetReasons(c echo.Context) error {
	reasons, apierr := h.AdvanceService.GetReasons()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"reasons": reasons}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultAdvanceRoute) GetMonthlySummary(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	year := time.Now().UTC().Year()
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("year", "int"))
		}
		year = parsed
	}

	months, apierr := h.AdvanceService.GetMonthlySummary(emp, year)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"year": year, "months": months}
	return c.JSON(http.StatusOK, &resp)
}
