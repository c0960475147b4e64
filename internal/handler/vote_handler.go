package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"votehub/internal/errors"
	"votehub/internal/service"
)

// VoteHandler handles vote submission.
type VoteHandler struct {
	voteService service.VoteService
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(voteService service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// VoteRequest represents a vote submission.
type VoteRequest struct {
	OptionID string `json:"option_id" validate:"required,uuid"`
}

// VoteResponse confirms a recorded vote.
type VoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

// SubmitVote godoc
// @Summary Cast a vote on an active poll
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body VoteRequest true "Chosen option"
// @Success 201 {object} VoteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 410 {object} errors.ErrorResponse
// @Router /polls/{id}/vote [post]
func (h *VoteHandler) SubmitVote(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid poll id",
			Code:  "INVALID_UUID",
		})
	}

	var req VoteRequest
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

	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid option_id",
			Code:  "INVALID_UUID",
		})
	}

	vote, err := h.voteService.SubmitVote(c.Request().Context(), pollID, optionID, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, VoteResponse{
		VoteID:  vote.ID.String(),
		Message: "vote recorded",
	})
}
