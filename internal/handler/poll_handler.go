package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"votehub/internal/errors"
	"votehub/internal/model"
	"votehub/internal/service"
)

// PollHandler handles poll endpoints.
type PollHandler struct {
	pollService service.PollService
}

// NewPollHandler creates a new poll handler.
func NewPollHandler(pollService service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// LinkRequest is an external link attached at poll creation.
type LinkRequest struct {
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
}

// CreatePollRequest represents a poll creation request.
type CreatePollRequest struct {
	Title       string        `json:"title" validate:"required,min=3"`
	Description string        `json:"description"`
	StartTime   *time.Time    `json:"start_time"`
	EndTime     *time.Time    `json:"end_time"`
	Options     []string      `json:"options" validate:"required,min=2"`
	Links       []LinkRequest `json:"links"`
	Status      string        `json:"status"`
}

// UpdateStatusRequest represents an admin status override.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreatePollResponse returns the created poll's identifiers.
type CreatePollResponse struct {
	PollID string `json:"poll_id"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// CreatePoll godoc
// @Summary Create a poll with options
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePollRequest true "Poll data"
// @Success 201 {object} CreatePollResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /polls/create [post]
func (h *PollHandler) CreatePoll(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req CreatePollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	input := service.CreatePollInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Options:      req.Options,
		TargetStatus: model.PollStatus(req.Status),
		CreatedBy:    claims.UserID,
	}
	for _, link := range req.Links {
		input.Links = append(input.Links, service.LinkInput{URL: link.URL, Description: link.Description})
	}

	poll, err := h.pollService.CreatePoll(c.Request().Context(), input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, CreatePollResponse{
		PollID: poll.ID.String(),
		Slug:   poll.Slug,
		Status: string(poll.Status),
	})
}

// ListPolls godoc
// @Summary List polls, optionally filtered by lifecycle status
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft|scheduled|active|closed"
// @Success 200 {array} model.Poll
// @Failure 400 {object} errors.ErrorResponse
// @Router /polls [get]
func (h *PollHandler) ListPolls(c echo.Context) error {
	status := model.PollStatus(c.QueryParam("status"))

	polls, err := h.pollService.ListPolls(c.Request().Context(), status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, polls)
}

// GetPoll godoc
// @Summary Get a poll with its options and media
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Success 200 {object} model.Poll
// @Failure 404 {object} errors.ErrorResponse
// @Router /polls/{id} [get]
func (h *PollHandler) GetPoll(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid poll id",
			Code:  "INVALID_UUID",
		})
	}

	poll, err := h.pollService.GetPoll(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, poll)
}

// GetResults godoc
// @Summary Get aggregated results for a poll
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Success 200 {object} service.PollResults
// @Failure 404 {object} errors.ErrorResponse
// @Router /polls/{id}/results [get]
func (h *PollHandler) GetResults(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid poll id",
			Code:  "INVALID_UUID",
		})
	}

	results, err := h.pollService.Results(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, results)
}

// GetPollBySlug godoc
// @Summary Get a poll by its permalink slug
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Poll slug"
// @Success 200 {object} model.Poll
// @Failure 404 {object} errors.ErrorResponse
// @Router /polls/slug/{slug} [get]
func (h *PollHandler) GetPollBySlug(c echo.Context) error {
	poll, err := h.pollService.GetPollBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, poll)
}

// UpdatePollRequest represents an admin edit of poll metadata. Omitted
// fields are left unchanged.
type UpdatePollRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// UpdatePoll godoc
// @Summary Edit a poll's metadata
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body UpdatePollRequest true "Fields to change"
// @Success 200 {object} model.Poll
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /polls/{id} [patch]
func (h *PollHandler) UpdatePoll(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid poll id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdatePollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	input := service.UpdatePollInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	poll, err := h.pollService.UpdatePoll(c.Request().Context(), id, input, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, poll)
}

// UpdateStatus godoc
// @Summary Override a poll's lifecycle status
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} model.Poll
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /polls/{id}/status [patch]
func (h *PollHandler) UpdateStatus(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid poll id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	poll, err := h.pollService.UpdateStatus(c.Request().Context(), id, model.PollStatus(req.Status), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, poll)
}
