package config

import "dhara-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// RouteSecurity is the access rule for one route template.
type RouteSecurity struct {
	Level SecurityLevel
	Roles []domain.Role // empty means any authenticated role
}

func public() RouteSecurity { return RouteSecurity{Level: SecurityPublic} }

func access(roles ...domain.Role) RouteSecurity {
	return RouteSecurity{Level: SecurityAccess, Roles: roles}
}

// EndpointSecurityConfig maps "METHOD path-template" to its access rule.
// Routes missing from the map require an access token.
var EndpointSecurityConfig = map[string]RouteSecurity{
	"GET /health":  public(),
	"GET /metrics": public(),

	// Auth - Public
	"POST /auth/register": public(),
	"POST /auth/login":    public(),

	// Users
	"GET /users/me": access(),

	// Pricing - Public
	"GET /pricing/quote":      public(),
	"GET /pricing/categories": public(),

	// Assets
	"GET /assets":         public(),
	"GET /assets/{id}":    public(),
	"POST /assets":        access(domain.RoleOperator),
	"PATCH /assets/{id}":  access(domain.RoleOperator),
	"DELETE /assets/{id}": access(domain.RoleOperator),

	// Maintenance - Operator only
	"GET /assets/{id}/maintenance":  access(domain.RoleOperator),
	"POST /assets/{id}/maintenance": access(domain.RoleOperator),

	// Bookings
	"POST /bookings":     access(domain.RoleFarmer),
	"GET /bookings/my":   access(),
	"GET /bookings/{id}": access(),

	// Notifications
	"GET /notifications":             access(),
	"PATCH /notifications/{id}/read": access(),

	// Admin
	"GET /admin/bookings": access(domain.RoleAdmin),
	"GET /admin/assets":   access(domain.RoleAdmin),
}

// SecurityFor returns the rule for method and route template.
func SecurityFor(method, template string) RouteSecurity {
	if rule, ok := EndpointSecurityConfig[method+" "+template]; ok {
		return rule
	}
	return access()
}

// Allows reports whether role satisfies the rule.
func (r RouteSecurity) Allows(role domain.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}
