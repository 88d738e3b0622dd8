package masterdata

import (
	"errors"
	"net/http"
	"strconv"

	masterdataerrors "go-careflow/internal/masterdata/errors"
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
	l := zap.L().Named("masterdata.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("masterdata.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateMasterDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("create master data failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, masterdataerrors.ErrInvalidMasterDataID)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, masterdataerrors.ErrInvalidMasterDataID)
		return
	}

	var req UpdateMasterDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if writeConflict(c, err) {
			return
		}

		h.logger.Error("update master data failed", zap.Int64("master_data_id", id), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.FromError(c, masterdataerrors.ErrInvalidMasterDataID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if writeConflict(c, err) {
			return
		}

		h.logger.Error("delete master data failed", zap.Int64("master_data_id", id), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) VerifyCombination(c *gin.Context) {
	var req VerifyCombinationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.Verify(c.Request.Context(), req); err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeConflict renders the referential-integrity 409. Operator tooling
// parses these fields, so they stay top-level rather than enveloped.
func writeConflict(c *gin.Context, err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeConflict {
		return false
	}
	details, ok := appErr.Details.(ConflictDetails)
	if !ok {
		return false
	}

	c.JSON(http.StatusConflict, gin.H{
		"message":             appErr.Message,
		"details":             details,
		"conflictType":        "FOREIGN_KEY_CONSTRAINT",
		"referencingServices": details.ReferencingServices,
	})
	return true
}
