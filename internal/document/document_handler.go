package document

import (
	"fmt"
	"net/http"

	documenterrors "go-careflow/internal/document/errors"
	"go-careflow/internal/shared/apperror"
	"go-careflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Upload(c *gin.Context) {
	var req UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.FromError(c, documenterrors.ErrMissingFile)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.FromError(c, documenterrors.ErrStorageFailure)
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.service.Upload(
		c.Request.Context(),
		req,
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		src,
	)
	if err != nil {
		h.logger.Error("upload document failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListByClient(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		response.FromError(c, apperror.RequiredField("client_id"))
		return
	}

	resp, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// View streams the stored bytes inline. Browsers open these links
// directly, so the route also accepts the token as a query parameter.
func (h *Handler) View(c *gin.Context) {
	meta, rc, err := h.service.OpenContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer rc.Close()

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", meta.FileName))
	c.DataFromReader(http.StatusOK, meta.SizeBytes, contentType, rc, nil)
}
