package contextutil

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AuthContext is the authenticated caller's identity plus the segment scope
// resolved for the request. It is built once by the auth/guard middleware and
// threaded through context.Context; handlers never reach back into raw claims.
type AuthContext struct {
	UserID    string
	Username  string
	Role      string
	CompanyID string // empty = not assigned to any company

	// Segments holds the segment ids visible to the caller on listing
	// endpoints. nil means unrestricted (global admin); an empty non-nil
	// slice means "company has no segments" and must stay empty, never all.
	Segments []int64

	// SegmentsResolved records whether the visibility set was computed for
	// this request.
	SegmentsResolved bool
}

// IsGlobalAdmin reports whether the caller is an admin with no company
// assignment, i.e. unrestricted cross-tenant access.
func (a AuthContext) IsGlobalAdmin() bool {
	return a.Role == RoleAdmin && a.CompanyID == ""
}

// CanSeeSegment reports whether a row with the given (nullable) segment id is
// visible to the caller. Unscoped rows (nil) are visible to everyone.
func (a AuthContext) CanSeeSegment(segmentID *int64) bool {
	if a.IsGlobalAdmin() || !a.SegmentsResolved || a.Segments == nil {
		return true
	}
	if segmentID == nil {
		return true
	}
	for _, id := range a.Segments {
		if id == *segmentID {
			return true
		}
	}
	return false
}
