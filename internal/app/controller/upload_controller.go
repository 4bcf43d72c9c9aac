package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/HovVathana/shoppink-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

var allowedFolders = map[string]bool{
	"products": true,
	"profiles": true,
}

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{storage: s3}
}

// PresignUpload handles POST /api/v1/admin/uploads/presign. The client PUTs
// the file straight to S3 and stores the returned public URL on the record.
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	var input struct {
		Folder      string `json:"folder" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Folder and content type are required")
		return
	}
	if !allowedFolders[input.Folder] {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown upload folder")
		return
	}

	upload, err := ctrl.storage.PresignUpload(c.Request.Context(), input.Folder, input.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			apperrors.UnprocessableEntity(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG and WebP images are accepted")
			return
		}
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed, "Failed to prepare upload")
		return
	}
	c.JSON(http.StatusOK, upload)
}
