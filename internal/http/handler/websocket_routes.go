package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"adelanta/internal/contract"
	"adelanta/internal/infrastructure/aws/websocket"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type NotificationService interface {
	RegisterConnection(employeeID int64, connID string, exp int64) apierror.ErrorResponse
	RemoveConnection(connectionID string)
	HandleMessage(msg *contract.IncomingSocketMessage, connID string)
}

type DefaultWSRoute struct {
	Notifications NotificationService
}

func NewWSDefault(notifications NotificationService) *DefaultWSRoute {
	return &DefaultWSRoute{Notifications: notifications}
}

func (h *DefaultWSRoute) HandleConnect(c echo.Context) error {
	emp, cerr := utils.GetEmployeeFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	connID := c.Request().Header.Get(websocket.HeaderConnectionID)
	if connID == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("connectionId"))
	}

	token, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	if apierr := h.Notifications.RegisterConnection(emp.ID, connID, token.Exp); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DefaultWSRoute) HandleDisconnect(c echo.Context) error {
	connID := c.Request().Header.Get(websocket.HeaderConnectionID)
	if connID != "" {
		h.Notifications.RemoveConnection(connID)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DefaultWSRoute) HandleMessage(c echo.Context) error {
	connID := c.Request().Header.Get(websocket.HeaderConnectionID)
	if connID == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("connectionId"))
	}

	var msg contract.IncomingSocketMessage
	if err := c.Bind(&msg); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	h.Notifications.HandleMessage(&msg, connID)
	return c.NoContent(http.StatusOK)
}
