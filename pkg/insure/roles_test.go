package insure

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity(email string) Identity {
	return Identity{ID: uuid.New(), Email: email, Name: "Test User"}
}

func TestResolver_ResolveRole_Memoizes(t *testing.T) {
	var calls int32
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return RoleAgent, nil
	})

	id := testIdentity("agent@example.com")
	ctx := context.Background()

	role, err := resolver.ResolveRole(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, role)

	role, err = resolver.ResolveRole(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, role)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestResolver_ResolveRole_CoalescesConcurrentLookups(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return RoleCustomer, nil
	})

	id := testIdentity("customer@example.com")
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role, err := resolver.ResolveRole(ctx, id)
			assert.NoError(t, err)
			results[i] = role
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, role := range results {
		assert.Equal(t, RoleCustomer, role)
	}
}

func TestResolver_ResolveRole_EmptyEmail(t *testing.T) {
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		t.Fatal("fetch should not be called")
		return "", nil
	})

	_, err := resolver.ResolveRole(context.Background(), Identity{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrRoleLookupFailed)
}

func TestResolver_ResolveRole_LookupFailure(t *testing.T) {
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		return "", errors.New("backend down")
	})

	_, err := resolver.ResolveRole(context.Background(), testIdentity("x@example.com"))
	assert.ErrorIs(t, err, ErrRoleLookupFailed)
}

func TestResolver_ResolveRole_FailureNotCached(t *testing.T) {
	var calls int32
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", errors.New("backend down")
		}
		return RoleAdmin, nil
	})

	id := testIdentity("admin@example.com")
	ctx := context.Background()

	_, err := resolver.ResolveRole(ctx, id)
	require.ErrorIs(t, err, ErrRoleLookupFailed)

	role, err := resolver.ResolveRole(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}

func TestResolver_CacheKeyedByIdentity(t *testing.T) {
	roles := map[string]string{
		"first@example.com":  RoleAdmin,
		"second@example.com": RoleCustomer,
	}
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		return roles[email], nil
	})

	first := testIdentity("first@example.com")
	second := testIdentity("second@example.com")
	ctx := context.Background()

	role, err := resolver.ResolveRole(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	// A different identity never sees the previous identity's role.
	role, err = resolver.ResolveRole(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, role)
}

func TestResolver_Invalidate(t *testing.T) {
	var calls int32
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return RoleCustomer, nil
	})

	id := testIdentity("customer@example.com")
	ctx := context.Background()

	_, err := resolver.ResolveRole(ctx, id)
	require.NoError(t, err)

	resolver.Invalidate(id)

	_, err = resolver.ResolveRole(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestResolver_Reset(t *testing.T) {
	var calls int32
	resolver := NewResolver(func(ctx context.Context, email string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return RoleAgent, nil
	})

	id := testIdentity("agent@example.com")
	ctx := context.Background()

	_, err := resolver.ResolveRole(ctx, id)
	require.NoError(t, err)

	resolver.Reset()

	_, err = resolver.ResolveRole(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
