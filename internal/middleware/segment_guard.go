package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go-careflow/internal/shared/contextutil"
	"go-careflow/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// SegmentRef is the minimal segment view the guard needs.
type SegmentRef struct {
	ID        int64
	CompanyID string
}

// SegmentDirectory resolves segments and company ownership.
// Implemented by segment.Service.
type SegmentDirectory interface {
	SegmentRefByID(ctx context.Context, id int64) (SegmentRef, bool, error)
	SegmentIDsOfCompany(ctx context.Context, companyID string) ([]int64, error)
}

const (
	msgSegmentNotFound  = "Segment not found"
	msgForeignSegment   = "Access denied: Segment does not belong to your company"
	msgCompanyRequired  = "Access denied: User must be assigned to a company"
	segmentIDQueryParam = "segmentId"
	segmentIDBodyAltKey = "segment_id"
)

// RequireSegmentAccess denies any request whose claimed segment does not
// belong to the caller's company. The candidate segment id is taken from the
// query string first, then the JSON body, then the path parameter; a request
// carrying no segment id passes through unscoped (row visibility is the
// responsibility of ResolveCompanySegments plus the repositories).
func RequireSegmentAccess(directory SegmentDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := contextutil.GetAuth(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		// An admin with no company operates across all tenants.
		if auth.IsGlobalAdmin() {
			c.Next()
			return
		}

		if auth.CompanyID == "" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", msgCompanyRequired, nil)
			c.Abort()
			return
		}

		segmentID, present, err := extractSegmentID(c)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "segmentId must be an integer", nil)
			c.Abort()
			return
		}
		if !present {
			c.Next()
			return
		}

		ref, found, err := directory.SegmentRefByID(c.Request.Context(), segmentID)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		if !found {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", msgSegmentNotFound, nil)
			c.Abort()
			return
		}

		if ref.CompanyID != auth.CompanyID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", msgForeignSegment, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ResolveCompanySegments attaches the caller's visible segment id set to the
// auth context for listing endpoints. A global admin gets nil (unrestricted);
// everyone else gets the possibly-empty set of their company's segments,
// never "all".
func ResolveCompanySegments(directory SegmentDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := contextutil.GetAuth(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		auth.SegmentsResolved = true

		if auth.IsGlobalAdmin() {
			auth.Segments = nil
		} else {
			if auth.CompanyID == "" {
				response.Error(c, http.StatusForbidden, "FORBIDDEN", msgCompanyRequired, nil)
				c.Abort()
				return
			}

			ids, err := directory.SegmentIDsOfCompany(c.Request.Context(), auth.CompanyID)
			if err != nil {
				response.FromError(c, err)
				c.Abort()
				return
			}
			if ids == nil {
				ids = []int64{}
			}
			auth.Segments = ids
		}

		ctx := contextutil.WithAuth(c.Request.Context(), auth)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractSegmentID returns the claimed segment id with query > body > path
// precedence. The body is restored after inspection so handlers can still
// bind it.
func extractSegmentID(c *gin.Context) (int64, bool, error) {
	if raw := c.Query(segmentIDQueryParam); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, true, err
		}
		return id, true, nil
	}

	if id, present := segmentIDFromBody(c); present {
		return id, true, nil
	}

	if raw := c.Param(segmentIDQueryParam); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, true, err
		}
		return id, true, nil
	}

	return 0, false, nil
}

func segmentIDFromBody(c *gin.Context) (int64, bool) {
	if c.Request.Body == nil || c.ContentType() != "application/json" {
		return 0, false
	}

	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil || len(raw) == 0 {
		return 0, false
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, false
	}

	// DTOs are split between camelCase and snake_case keys; the guard must
	// see the claimed segment under either spelling.
	field, ok := body[segmentIDQueryParam]
	if !ok {
		field, ok = body[segmentIDBodyAltKey]
	}
	if !ok {
		return 0, false
	}

	var id int64
	if err := json.Unmarshal(field, &id); err != nil {
		return 0, false
	}
	return id, true
}
