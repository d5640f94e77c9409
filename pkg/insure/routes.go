package insure

import "strings"

// RuleKind says what a route demands before it renders.
type RuleKind int

const (
	RulePublic RuleKind = iota
	RuleRequireAuth
	RuleRequireRoles
)

// Rule binds a path pattern to an access requirement. Patterns use
// :name segments the same way the server's router does.
type Rule struct {
	Pattern string
	Kind    RuleKind
	Roles   []string
}

func Public(pattern string) Rule {
	return Rule{Pattern: pattern, Kind: RulePublic}
}

func Authenticated(pattern string) Rule {
	return Rule{Pattern: pattern, Kind: RuleRequireAuth}
}

func RoleGated(pattern string, roles ...string) Rule {
	return Rule{Pattern: pattern, Kind: RuleRequireRoles, Roles: roles}
}

// Table is an ordered route table; the first matching rule wins.
type Table struct {
	rules []Rule
}

func NewTable(rules []Rule) *Table {
	return &Table{rules: rules}
}

// Match finds the rule for path. Unknown paths fall back to public;
// the application's catch-all is a marketing 404, not a guarded view.
func (t *Table) Match(path string) Rule {
	for _, rule := range t.rules {
		if matchPattern(rule.Pattern, path) {
			return rule
		}
	}
	return Rule{Pattern: path, Kind: RulePublic}
}

func matchPattern(pattern, path string) bool {
	ps := splitPath(pattern)
	xs := splitPath(path)
	if len(ps) != len(xs) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != xs[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// DefaultRoutes is the application's route surface: the public
// marketing pages, the auth pages, and the role-gated dashboard.
func DefaultRoutes() []Rule {
	return []Rule{
		Public("/"),
		Public("/AllPolicies"),
		Public("/policies/:id"),
		Public("/blog"),
		Public("/blog/:id"),
		Public("/aboutus"),
		Public("/quote"),
		Public("/application"),
		Public("/login"),
		Public("/register"),

		Authenticated("/dashboard"),
		Authenticated("/dashboard/profile"),

		RoleGated("/dashboard/my-policies", RoleCustomer),
		RoleGated("/dashboard/payment-status", RoleCustomer),
		RoleGated("/dashboard/claim-request", RoleCustomer),

		RoleGated("/dashboard/assigned-customers", RoleAgent),
		RoleGated("/dashboard/manage-blogs", RoleAgent, RoleAdmin),

		RoleGated("/dashboard/manage-applications", RoleAdmin),
		RoleGated("/dashboard/manage-users", RoleAdmin),
		RoleGated("/dashboard/manage-policies", RoleAdmin),
		RoleGated("/dashboard/manage-transactions", RoleAdmin),
		RoleGated("/dashboard/manage-agents", RoleAdmin),
	}
}
