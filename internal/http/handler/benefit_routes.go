package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type BenefitService interface {
	GetBenefits(actor *entity.Employee) ([]*contract.BenefitResponse, apierror.ErrorResponse)
	CreateBenefit(actor *entity.Employee, req *contract.BenefitRequest, imageHeader *multipart.FileHeader) (*contract.BenefitResponse, apierror.ErrorResponse)
	UpdateBenefit(actor *entity.Employee, id int64, req *contract.UpdateBenefitRequest) (*contract.BenefitResponse, apierror.ErrorResponse)
	DeleteBenefit(actor *entity.Employee, id int64) apierror.ErrorResponse
}

type DefaultBenefitRoute struct {
	BenefitService BenefitService
}

func NewBenefitDefault(benefitService BenefitService) *DefaultBenefitRoute {
	return &DefaultBenefitRoute{BenefitService: benefitService}
}

func (h *DefaultBenefitRoute) GetBenefits(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	benefits, apierr := h.BenefitService.GetBenefits(emp)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"benefits": benefits}
	return c.JSON(http.StatusOK, &resp)
}

// CreateBenefit accepts either a plain JSON body or a multipart form
// with a 'json_payload' field plus an 'image' file.
func (h *DefaultBenefitRoute) CreateBenefit(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return h.createFromJSON(c)
	}

	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return h.createFromForm(c)
	}

	return c.JSON(http.StatusUnsupportedMediaType, apierror.InvalidMediaTypeError)
}

func (h *DefaultBenefitRoute) UpdateBenefit(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateBenefitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	updated, apierr := h.BenefitService.UpdateBenefit(emp, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *DefaultBenefitRoute) DeleteBenefit(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := h.BenefitService.DeleteBenefit(emp, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DefaultBenefitRoute) createFromJSON(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.BenefitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	benefit, apierr := h.BenefitService.CreateBenefit(emp, &req, nil)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, benefit)
}

func (h *DefaultBenefitRoute) createFromForm(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	jsonPayload := strings.TrimSpace(c.FormValue("json_payload"))
	if jsonPayload == "" {
		return c.JSON(http.StatusBadRequest, apierror.FormJSONRequiredError)
	}

	var req contract.BenefitRequest
	if err := json.Unmarshal([]byte(jsonPayload), &req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	imageHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingImageFileError)
	}

	benefit, apierr := h.BenefitService.CreateBenefit(emp, &req, imageHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, benefit)
}
