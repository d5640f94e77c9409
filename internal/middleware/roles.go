package middleware

import (
	"context"

	"github.com/m1z23r/drift/pkg/drift"
)

// RoleResolver looks up the current authorization role for an email.
// The token's role claim is only a hint; the stored role decides.
type RoleResolver interface {
	GetRoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireRole gates a route on a set of acceptable roles. Membership is
// a single set check. A failed lookup denies access: a wrong default
// would be a privilege-escalation defect, so unknown means forbidden.
func RequireRole(resolver RoleResolver, roles ...string) drift.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *drift.Context) {
		email := GetUserEmail(c)
		if email == "" {
			c.Unauthorized("not authenticated")
			return
		}

		role, err := resolver.GetRoleByEmail(context.Background(), email)
		if err != nil {
			c.Forbidden("could not confirm role")
			return
		}

		if !allowed[role] {
			c.Forbidden("insufficient permissions")
			return
		}

		c.Set(UserRoleKey, role)
		c.Next()
	}
}
