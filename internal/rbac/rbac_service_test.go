package rbac_test

import (
	"testing"

	"go-careflow/internal/domain"
	"go-careflow/internal/rbac"
	"go-careflow/internal/rbac/infra"
	"go-careflow/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
)

func newRBACService(t *testing.T) rbac.Service {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	service, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return service
}

func TestRBACService_AdminHasFullControl(t *testing.T) {
	service := newRBACService(t)

	resources := []string{
		"users", "companies", "segments", "masterdata",
		"clients", "client-services", "documents", "case-notes",
	}
	actions := []string{"read", "create", "update", "delete"}

	for _, resource := range resources {
		for _, action := range actions {
			allowed, err := service.Enforce(domain.EnforceRequest{
				Role:     contextutil.RoleAdmin,
				Resource: resource,
				Action:   action,
			})
			assert.NoError(t, err)
			assert.True(t, allowed, "admin should be allowed %s on %s", action, resource)
		}
	}
}

func TestRBACService_UserPermissions(t *testing.T) {
	service := newRBACService(t)

	cases := []struct {
		name     string
		resource string
		action   string
		allowed  bool
	}{
		{"can read segments", "segments", "read", true},
		{"cannot create segments", "segments", "create", false},
		{"can read master data", "masterdata", "read", true},
		{"cannot create master data", "masterdata", "create", false},
		{"cannot update master data", "masterdata", "update", false},
		{"can create clients", "clients", "create", true},
		{"can update clients", "clients", "update", true},
		{"cannot delete clients", "clients", "delete", false},
		{"can create client services", "client-services", "create", true},
		{"can update client services", "client-services", "update", true},
		{"cannot delete client services", "client-services", "delete", false},
		{"can upload documents", "documents", "create", true},
		{"cannot delete documents", "documents", "delete", false},
		{"can delete case notes", "case-notes", "delete", true},
		{"cannot manage users", "users", "read", false},
		{"cannot manage companies", "companies", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := service.Enforce(domain.EnforceRequest{
				Role:     contextutil.RoleUser,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_UnknownRoleDeniedEverywhere(t *testing.T) {
	service := newRBACService(t)

	allowed, err := service.Enforce(domain.EnforceRequest{
		Role:     "auditor",
		Resource: "clients",
		Action:   "read",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
