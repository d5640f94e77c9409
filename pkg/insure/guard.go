package insure

import "context"

// DecisionKind is the outcome of evaluating a guard for a path.
type DecisionKind int

const (
	// DecisionLoading means the session is still hydrating; render a
	// neutral indicator and re-evaluate on the next state change.
	DecisionLoading DecisionKind = iota
	DecisionRedirect
	DecisionAllowed
	DecisionForbidden
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionLoading:
		return "loading"
	case DecisionRedirect:
		return "redirect"
	case DecisionAllowed:
		return "allowed"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Decision tells the caller what to render. Target and RememberPath
// are set only for DecisionRedirect.
type Decision struct {
	Kind         DecisionKind
	Target       string
	RememberPath string
}

// Guard decides per navigation whether a path may render, from the
// session state and the resolved role.
type Guard struct {
	store    *Store
	resolver *Resolver
	table    *Table
}

// NewGuard wires a guard over the session store and role resolver. A
// nil table uses DefaultRoutes. The resolver's cache is cleared on
// sign-out so no decision can use a previous identity's role.
func NewGuard(store *Store, resolver *Resolver, table *Table) *Guard {
	if table == nil {
		table = NewTable(DefaultRoutes())
	}
	store.OnSignOut(resolver.Reset)
	return &Guard{store: store, resolver: resolver, table: table}
}

// Evaluate runs the guard state machine for path.
//
// Loading sessions stay loading. Anonymous users are redirected to
// the login page with the current path remembered for the post-login
// return. Role requirements are a single set-membership check against
// the resolved role; a failed resolution is forbidden, never allowed.
func (g *Guard) Evaluate(ctx context.Context, path string) Decision {
	rule := g.table.Match(path)
	if rule.Kind == RulePublic {
		return Decision{Kind: DecisionAllowed}
	}

	state, identity := g.store.CurrentSession()
	switch state {
	case StateLoading:
		return Decision{Kind: DecisionLoading}
	case StateAnonymous:
		g.store.RememberPath(path)
		return Decision{Kind: DecisionRedirect, Target: "/login", RememberPath: path}
	}

	if rule.Kind == RuleRequireAuth {
		return Decision{Kind: DecisionAllowed}
	}

	role, err := g.resolver.ResolveRole(ctx, *identity)
	if err != nil {
		// Unknown means forbidden.
		return Decision{Kind: DecisionForbidden}
	}

	for _, allowed := range rule.Roles {
		if role == allowed {
			return Decision{Kind: DecisionAllowed}
		}
	}
	return Decision{Kind: DecisionForbidden}
}
