package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"votehub/internal/errors"
	"votehub/internal/service"
)

// NotificationHandler handles notification preference endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// PreferencesRequest carries the full set of notification flags.
type PreferencesRequest struct {
	PollOpened       bool `json:"poll_opened"`
	PollClosing      bool `json:"poll_closing"`
	ResultsPublished bool `json:"results_published"`
}

// GetPreferences godoc
// @Summary Get the authenticated user's notification preferences
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.NotificationPreference
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/notifications [get]
func (h *NotificationHandler) GetPreferences(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	pref, err := h.notificationService.GetPreferences(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pref)
}

// UpdatePreferences godoc
// @Summary Update the authenticated user's notification preferences
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PreferencesRequest true "Notification flags"
// @Success 200 {object} model.NotificationPreference
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/notifications [put]
func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	pref, err := h.notificationService.UpdatePreferences(c.Request().Context(), claims.UserID, service.PreferencesInput{
		PollOpened:       req.PollOpened,
		PollClosing:      req.PollClosing,
		ResultsPublished: req.ResultsPublished,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pref)
}
