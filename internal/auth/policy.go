package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// Capability names an action a route may require.
type Capability string

const (
	CapTicketsCreate          Capability = "tickets:create"
	CapTicketsRead            Capability = "tickets:read"
	CapTicketsWork            Capability = "tickets:work"
	CapTicketsAssign          Capability = "tickets:assign"
	CapCommunicationsWrite    Capability = "communications:write"
	CapCommunicationsInternal Capability = "communications:internal"
	CapAgenciesRead           Capability = "agencies:read"
	CapAgenciesManage         Capability = "agencies:manage"
	CapCategoriesManage       Capability = "categories:manage"
	CapRoutingManage          Capability = "routing:manage"
	CapUsersManage            Capability = "users:manage"
	CapUsersReadSelf          Capability = "users:read-self"
	CapMetricsRead            Capability = "metrics:read"
)

// Policy maps each role to the capabilities it holds.
type Policy map[domain.UserRole][]Capability

// DefaultPolicy is the role matrix of the service.
func DefaultPolicy() Policy {
	return Policy{
		domain.RoleCitizen: {
			CapTicketsCreate,
			CapTicketsRead,
			CapCommunicationsWrite,
			CapAgenciesRead,
			CapUsersReadSelf,
		},
		domain.RoleAgencyStaff: {
			CapTicketsCreate,
			CapTicketsRead,
			CapTicketsWork,
			CapCommunicationsWrite,
			CapCommunicationsInternal,
			CapAgenciesRead,
			CapUsersReadSelf,
		},
		domain.RoleAdmin: {
			CapTicketsCreate,
			CapTicketsRead,
			CapTicketsWork,
			CapTicketsAssign,
			CapCommunicationsWrite,
			CapCommunicationsInternal,
			CapAgenciesRead,
			CapAgenciesManage,
			CapCategoriesManage,
			CapRoutingManage,
			CapUsersManage,
			CapUsersReadSelf,
			CapMetricsRead,
		},
	}
}

// Authorizer answers capability checks against a Policy.
type Authorizer struct {
	grants map[domain.UserRole]map[Capability]struct{}
}

// NewAuthorizer indexes the policy.
func NewAuthorizer(policy Policy) *Authorizer {
	grants := make(map[domain.UserRole]map[Capability]struct{}, len(policy))
	for role, caps := range policy {
		set := make(map[Capability]struct{}, len(caps))
		for _, c := range caps {
			set[c] = struct{}{}
		}
		grants[role] = set
	}
	return &Authorizer{grants: grants}
}

// Can reports whether role holds capability.
func (a *Authorizer) Can(role domain.UserRole, capability Capability) bool {
	_, ok := a.grants[role][capability]
	return ok
}

// Check returns a forbidden error naming the role when the user lacks capability.
func (a *Authorizer) Check(user *domain.User, capability Capability) error {
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !a.Can(user.Role, capability) {
		return apperrors.NewForbidden(fmt.Sprintf("role %s lacks capability %s", user.Role, capability))
	}
	return nil
}

// Require builds a route guard for capability. It implies RequireAuth.
func (a *Authorizer) Require(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := CurrentUser(c)
		if err := a.Check(user, capability); err != nil {
			return err
		}
		return c.Next()
	}
}
