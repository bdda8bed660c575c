package devserver

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// rbacModel is an RBAC model with keyMatch2 path patterns and regex method
// matching. Policies live in memory; the dev backend has no durable policy
// store.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Authorizer wraps a Casbin enforcer seeded with the dev backend's static
// role policy.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds the enforcer and loads the built-in policy: admins own
// everything under /admin, regular users own the authenticated user surface.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}

	policies := [][]string{
		{"role_ADMIN", "/admin/*", "(GET|POST|PUT|DELETE)"},
		{"role_USER", "/users/*", "(GET|POST|PUT|DELETE)"},
		{"role_USER", "/property/:id/book", "POST"},
		{"role_USER", "/property/:id/user-booking", "GET"},
		{"role_USER", "/property/:id/shortlist", "POST"},
		{"role_USER", "/property/:id/toggle-shortlist", "POST"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("casbin policy %v: %w", p, err)
		}
	}
	// Admins inherit the user surface.
	if _, err := e.AddGroupingPolicy("role_ADMIN", "role_USER"); err != nil {
		return nil, fmt.Errorf("casbin grouping: %w", err)
	}

	return &Authorizer{enforcer: e}, nil
}

// Allowed reports whether sub may perform act on obj.
func (a *Authorizer) Allowed(sub, obj, act string) (bool, error) {
	return a.enforcer.Enforce(sub, obj, act)
}
