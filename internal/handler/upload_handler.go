package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/service"
)

// UploadHandler receives document files for ingestion.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler instance.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadFile handles POST /upload/file. The multipart form carries the
// file under "document" plus optional category and comma-separated tags.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file field 'document' is required")
		return
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	doc, err := h.uploadService.UploadDocument(
		c.Request.Context(),
		fileHeader,
		c.PostForm("category"),
		tags,
		c.PostForm("uploadedBy"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType), errors.Is(err, service.ErrFileTooLarge):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to upload document")
		}
		return
	}

	respondOK(c, http.StatusCreated, doc)
}
