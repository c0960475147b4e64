package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"votehub/internal/errors"
	"votehub/internal/model"
	"votehub/internal/service"
)

// MediaHandler handles media upload endpoints.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadResponse returns where an uploaded object landed.
type UploadResponse struct {
	MediaID     string `json:"media_id"`
	StoragePath string `json:"storage_path"`
	URL         string `json:"url"`
}

// Upload godoc
// @Summary Upload a media file for a poll or option
// @Description Multipart upload. Exactly one of poll_id or option_id must be
// @Description set; option uploads are always images and each option carries
// @Description at most one.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param poll_id formData string false "Poll ID for a poll attachment"
// @Param option_id formData string false "Option ID for an option image"
// @Param media_type formData string false "image|document (poll attachments)"
// @Param description formData string false "Attachment description"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /polls/upload [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "file is required",
			Code:  "INVALID_REQUEST",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "cannot read uploaded file",
			Code:  "INVALID_REQUEST",
		})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	pollIDValue := c.FormValue("poll_id")
	optionIDValue := c.FormValue("option_id")

	switch {
	case optionIDValue != "":
		optionID, err := uuid.Parse(optionIDValue)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid option_id",
				Code:  "INVALID_UUID",
			})
		}
		media, err := h.mediaService.UploadOptionImage(c.Request().Context(), optionID, fileHeader.Filename, contentType, file)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusCreated, UploadResponse{
			MediaID:     media.ID.String(),
			StoragePath: media.StoragePath,
			URL:         media.URL,
		})

	case pollIDValue != "":
		pollID, err := uuid.Parse(pollIDValue)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid poll_id",
				Code:  "INVALID_UUID",
			})
		}
		mediaType := model.MediaType(c.FormValue("media_type"))
		if mediaType == "" {
			mediaType = model.MediaTypeImage
		}
		media, err := h.mediaService.UploadPollAttachment(c.Request().Context(), pollID, mediaType,
			fileHeader.Filename, contentType, c.FormValue("description"), file)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusCreated, UploadResponse{
			MediaID:     media.ID.String(),
			StoragePath: media.StoragePath,
			URL:         media.URL,
		})

	default:
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "poll_id or option_id is required",
			Code:  "INVALID_REQUEST",
		})
	}
}
