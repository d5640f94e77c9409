package insure

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/rafiul/lifesure-api/pkg/dto"
)

type SessionState int

const (
	// StateLoading is the initial state, before hydration has decided
	// whether a stored credential is still valid.
	StateLoading SessionState = iota
	StateAnonymous
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is the signed-in user as the session knows them. The role
// is not part of the identity; it is resolved separately.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
	Photo *string
}

// Profile carries the optional fields collected at registration.
type Profile struct {
	Name  string
	Photo *string
}

var (
	ErrEmailAlreadyInUse = errors.New("email already in use")
	ErrNotAuthenticated  = errors.New("no authenticated session")

	// ErrRegistrationIncomplete means the credential was created but
	// the profile record was not. The user can sign in and finish
	// their profile later; nothing is rolled back.
	ErrRegistrationIncomplete = errors.New("registration incomplete")
)

// Store holds the process-wide session. All readers go through
// CurrentSession or Subscribe; only the Store's own operations mutate
// the state.
type Store struct {
	client *Client

	mu           sync.RWMutex
	state        SessionState
	identity     *Identity
	accessToken  string
	refreshToken string
	intended     string

	subs        map[int]chan struct{}
	nextSub     int
	signOutFns  []func()
}

// NewStore builds a session store talking to the API at baseURL. The
// store starts in StateLoading; call Hydrate to settle it.
func NewStore(baseURL string, httpClient *http.Client) *Store {
	s := &Store{
		state: StateLoading,
		subs:  make(map[int]chan struct{}),
	}
	s.client = NewClient(baseURL, s, httpClient)
	return s
}

// Client returns an API client bound to this session's credential.
func (s *Store) Client() *Client {
	return s.client
}

// AccessToken implements CredentialSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// CurrentSession is a synchronous read of the session state. The
// returned identity is nil unless the state is StateAuthenticated.
func (s *Store) CurrentSession() (SessionState, *Identity) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return s.state, nil
	}
	id := *s.identity
	return s.state, &id
}

// Subscribe returns a channel that receives a tick after every state
// change, and a function to unsubscribe.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, key)
	}
}

// OnSignOut registers fn to run synchronously whenever the session is
// cleared. The role resolver hooks in here to drop its cache.
func (s *Store) OnSignOut(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signOutFns = append(s.signOutFns, fn)
}

// RememberPath records where the user was headed when a guard
// redirected them to sign in.
func (s *Store) RememberPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intended = path
}

// Hydrate settles the initial StateLoading using a previously stored
// refresh token. An empty or rejected token leaves the session
// anonymous; hydration failure is not an error.
func (s *Store) Hydrate(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		s.setAnonymous()
		return
	}

	var tokens dto.TokenResponse
	err := s.client.Post(ctx, "/api/v1/auth/refresh", dto.RefreshTokenRequest{RefreshToken: refreshToken}, &tokens)
	if err != nil {
		s.setAnonymous()
		return
	}

	var user dto.UserResponse
	s.mu.Lock()
	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.mu.Unlock()

	if err := s.client.Get(ctx, "/api/v1/users/me", &user); err != nil {
		s.setAnonymous()
		return
	}
	s.setAuthenticated(tokens.AccessToken, tokens.RefreshToken, identityFromUser(user))
}

// SignIn authenticates with email and password. On success it returns
// the intended destination captured before the login redirect, or ""
// if there was none.
func (s *Store) SignIn(ctx context.Context, email, password string) (string, error) {
	var resp dto.AuthResponse
	err := s.client.Post(ctx, "/api/v1/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	s.setAuthenticated(resp.AccessToken, resp.RefreshToken, identityFromUser(resp.User))
	return s.consumeIntended(), nil
}

// SignInWithGoogle exchanges the short-lived code from the OAuth
// callback for a session. The backend upserts the user record, so a
// returning user signs in to their existing account.
func (s *Store) SignInWithGoogle(ctx context.Context, code string) (string, error) {
	var resp dto.AuthResponse
	err := s.client.Post(ctx, "/api/v1/auth/exchange", dto.ExchangeCodeRequest{Code: code}, &resp)
	if err != nil {
		return "", err
	}
	s.setAuthenticated(resp.AccessToken, resp.RefreshToken, identityFromUser(resp.User))
	return s.consumeIntended(), nil
}

// SignUp registers a credential and then creates the user record. A
// duplicate email fails with ErrEmailAlreadyInUse. If the credential
// is created but the record call fails for another reason, the session
// is still established and ErrRegistrationIncomplete is returned.
func (s *Store) SignUp(ctx context.Context, email, password string, profile Profile) (string, error) {
	var resp dto.AuthResponse
	err := s.client.Post(ctx, "/api/v1/auth/register", dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     profile.Name,
		Photo:    profile.Photo,
	}, &resp)
	if err != nil {
		if IsConflict(err) {
			return "", ErrEmailAlreadyInUse
		}
		return "", err
	}
	s.setAuthenticated(resp.AccessToken, resp.RefreshToken, identityFromUser(resp.User))

	err = s.client.Post(ctx, "/api/v1/users", dto.CreateUserRequest{
		Name:  profile.Name,
		Email: email,
		Photo: profile.Photo,
	}, nil)
	if err != nil && !IsConflict(err) {
		// Record creation races and repeats; a 409 means it already
		// exists and is fine.
		return s.consumeIntended(), ErrRegistrationIncomplete
	}

	return s.consumeIntended(), nil
}

// SignOut revokes the refresh token and clears the session. Local
// state is always cleared, even when the revoke call fails.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken != "" {
		_ = s.client.Post(ctx, "/api/v1/auth/logout", dto.RefreshTokenRequest{RefreshToken: refreshToken}, nil)
	}
	s.clear()
}

func (s *Store) setAuthenticated(accessToken, refreshToken string, id Identity) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.identity = &id
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.identity = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Store) clear() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.identity = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.intended = ""
	fns := make([]func(), len(s.signOutFns))
	copy(fns, s.signOutFns)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	s.notify()
}

func (s *Store) consumeIntended() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	dest := s.intended
	s.intended = ""
	return dest
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func identityFromUser(u dto.UserResponse) Identity {
	return Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Photo: u.Photo,
	}
}
