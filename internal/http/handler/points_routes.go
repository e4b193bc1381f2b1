package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type PointsService interface {
	ApplyTransaction(actor *entity.Employee, req *contract.PointTransactionRequest) apierror.ErrorResponse
	GetCompanyBalance(actor *entity.Employee, companyID int64) (*contract.CompanyPointsResponse, apierror.ErrorResponse)
	GetTransactions(actor *entity.Employee, companyID int64) ([]*contract.PointTransactionResponse, apierror.ErrorResponse)
}

type DefaultPointsRoute struct {
	PointsService PointsService
}

func NewPointsDefault(pointsService PointsService) *DefaultPointsRoute {
	return &DefaultPointsRoute{PointsService: pointsService}
}

func (h *DefaultPointsRoute) CreateTransaction(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.PointTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := h.PointsService.ApplyTransaction(emp, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *DefaultPointsRoute) GetTransactions(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	companyID, err := strconv.ParseInt(c.QueryParam("company_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("company_id", "int"))
	}

	txs, apierr := h.PointsService.GetTransactions(emp, companyID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"transactions": txs}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultPointsRoute) GetCompanyBalance(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	balance, apierr := h.PointsService.GetCompanyBalance(emp, companyID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, balance)
}
