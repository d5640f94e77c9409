package insure

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Role values mirror the server's vocabulary.
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// ErrRoleLookupFailed means the backend could not confirm a role.
// Callers must fail closed: an unconfirmed role grants nothing.
var ErrRoleLookupFailed = errors.New("role lookup failed")

// RoleFunc fetches the role for an email from the backend.
type RoleFunc func(ctx context.Context, email string) (string, error)

// APIRoleFunc resolves roles through the user profile endpoint.
func APIRoleFunc(client *Client) RoleFunc {
	return func(ctx context.Context, email string) (string, error) {
		var user struct {
			Role string `json:"role"`
		}
		if err := client.Get(ctx, "/api/v1/users/"+url.PathEscape(email), &user); err != nil {
			return "", err
		}
		return user.Role, nil
	}
}

// Resolver maps an identity to its role with per-identity memoization.
// Concurrent lookups for the same identity share one backend call, so
// rapid duplicate evaluations cannot race each other.
type Resolver struct {
	fetch RoleFunc

	mu    sync.RWMutex
	cache map[string]string

	group singleflight.Group
}

func NewResolver(fetch RoleFunc) *Resolver {
	return &Resolver{
		fetch: fetch,
		cache: make(map[string]string),
	}
}

// ResolveRole returns the role for id, using the cached value when one
// exists for this identity. The cache is keyed by identity ID, never
// by "last resolved role", so a sign-out-then-sign-in as a different
// user cannot see a stale role.
func (r *Resolver) ResolveRole(ctx context.Context, id Identity) (string, error) {
	if id.Email == "" {
		return "", fmt.Errorf("%w: identity has no email", ErrRoleLookupFailed)
	}

	key := id.ID.String()

	r.mu.RLock()
	role, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return role, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		role, err := r.fetch(ctx, id.Email)
		if err != nil {
			return "", err
		}
		r.mu.Lock()
		r.cache[key] = role
		r.mu.Unlock()
		return role, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRoleLookupFailed, err)
	}
	return v.(string), nil
}

// Invalidate drops the cached role for one identity. Call it after an
// action known to change the role, such as editing your own profile.
func (r *Resolver) Invalidate(id Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, id.ID.String())
}

// Reset drops the whole cache. The session store calls this on
// sign-out.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]string)
}
