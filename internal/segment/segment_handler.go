package segment

import (
	"net/http"
	"strconv"

	segmenterrors "go-careflow/internal/segment/errors"
	"go-careflow/internal/shared/apperror"
	"go-careflow/internal/shared/contextutil"
	"go-careflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("segment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("segment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("create segment failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Rename(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, segmenterrors.ErrInvalidSegmentID)
		return
	}

	var req RenameSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Rename(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByCompany(c *gin.Context) {
	companyID := c.Param("companyId")

	// Non-admins may only look at their own company.
	if auth, ok := contextutil.GetAuth(c.Request.Context()); ok {
		if auth.Role != contextutil.RoleAdmin && auth.CompanyID != companyID {
			response.FromError(c, segmenterrors.ErrSegmentNotFound)
			return
		}
	}

	resp, err := h.service.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// MySegments feeds the segment picker in the UI; it degrades to an empty
// list rather than erroring.
func (h *Handler) MySegments(c *gin.Context) {
	resp, err := h.service.MySegments(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
