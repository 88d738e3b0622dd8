package rbac

import (
	"sync"

	"go-careflow/internal/domain"
	"go-careflow/internal/shared/contextutil"

	"github.com/casbin/casbin/v2"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadPolicies installs the fixed two-role policy set. The system has exactly
// admin and user; there is no per-tenant role editing.
func (s *service) loadPolicies() error {
	s.enforcer.ClearPolicy()

	policies := [][]string{
		// admin: full control of every resource
		{contextutil.RoleAdmin, "users", "*"},
		{contextutil.RoleAdmin, "companies", "*"},
		{contextutil.RoleAdmin, "segments", "*"},
		{contextutil.RoleAdmin, "masterdata", "*"},
		{contextutil.RoleAdmin, "clients", "*"},
		{contextutil.RoleAdmin, "client-services", "*"},
		{contextutil.RoleAdmin, "documents", "*"},
		{contextutil.RoleAdmin, "case-notes", "*"},

		// user: day-to-day case work within their segment scope
		{contextutil.RoleUser, "segments", "read"},
		{contextutil.RoleUser, "masterdata", "read"},
		{contextutil.RoleUser, "clients", "read"},
		{contextutil.RoleUser, "clients", "create"},
		{contextutil.RoleUser, "clients", "update"},
		{contextutil.RoleUser, "client-services", "read"},
		{contextutil.RoleUser, "client-services", "create"},
		{contextutil.RoleUser, "client-services", "update"},
		{contextutil.RoleUser, "documents", "read"},
		{contextutil.RoleUser, "documents", "create"},
		{contextutil.RoleUser, "case-notes", "read"},
		{contextutil.RoleUser, "case-notes", "create"},
		{contextutil.RoleUser, "case-notes", "delete"},
	}

	for _, p := range policies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
