// Package session owns the client's authentication snapshot: who (if
// anyone) is signed in, and whether that belief has been confirmed against
// the backend since the last navigation. All mutation goes through the
// Store's own operations; consumers only read snapshots.
package session

import (
	"context"
	"net/http"
	"sync"

	"metroeval/frontend/internal/backend"
	"metroeval/frontend/internal/model"
)

// Session is a point-in-time view of the authentication state. Identity is
// nil for an anonymous visitor and never partially populated otherwise.
type Session struct {
	Resolved bool
	Identity *model.Profile
}

func (s Session) Authenticated() bool {
	return s.Identity != nil
}

// Result is the outcome of a credential submission. Role and Profile come
// from the backend's auth response rather than a re-read of the session, so
// callers can navigate correctly even while the refreshed snapshot settles.
type Result struct {
	OK      bool
	Role    string
	Profile *model.Profile
	Message string
}

const (
	loginConnectivityMessage    = "Login failed. Please check your connection."
	loginFallbackMessage        = "Invalid credentials"
	registerConnectivityMessage = "Registration failed. Please check your connection."
	registerFallbackMessage     = "Registration failed"
)

// Store is the single source of truth for the session. It also carries the
// backend session cookies, which a browser would otherwise hold ambiently.
type Store struct {
	client *backend.Client

	mu       sync.Mutex
	cookies  map[string]*http.Cookie
	resolved bool
	identity *model.Profile
}

func NewStore(client *backend.Client, cookies []*http.Cookie) *Store {
	s := &Store{
		client:  client,
		cookies: make(map[string]*http.Cookie),
	}
	s.mergeCookies(cookies)
	return s
}

func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{Resolved: s.resolved, Identity: s.identity}
}

// Cookies returns the backend cookies currently held for this session.
func (s *Store) Cookies() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	cookies := make([]*http.Cookie, 0, len(s.cookies))
	for _, cookie := range s.cookies {
		cookies = append(cookies, cookie)
	}
	return cookies
}

// CheckSession re-derives the session from the backend. Every failure mode
// (transport error, unauthenticated response, malformed payload) resolves
// to anonymous; this operation never reports an error. Overlapping calls
// are tolerated: each completed check fully replaces the snapshot.
func (s *Store) CheckSession(ctx context.Context) Session {
	profile, err := s.client.Profile(ctx, s.Cookies())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = true
	if err != nil {
		s.identity = nil
	} else {
		s.identity = profile
	}
	return Session{Resolved: s.resolved, Identity: s.identity}
}

// Login submits credentials and, on backend-reported success, refreshes the
// session before returning. The session is not mutated on failure.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	res, cookies, err := s.client.Login(ctx, s.Cookies(), email, password)
	if err != nil {
		return Result{Message: loginConnectivityMessage}
	}
	if !res.Success {
		message := res.Error
		if message == "" {
			message = loginFallbackMessage
		}
		return Result{Message: message}
	}

	s.adoptCookies(cookies)
	s.CheckSession(ctx)
	return Result{OK: true, Role: res.Role, Profile: res.User}
}

// Register creates an account and signs the user in. It returns only after
// the follow-up session refresh has completed, so a caller navigating on the
// result never races the refresh.
func (s *Store) Register(ctx context.Context, req backend.RegisterRequest) Result {
	res, cookies, err := s.client.Register(ctx, s.Cookies(), req)
	if err != nil {
		return Result{Message: registerConnectivityMessage}
	}
	if !res.Success {
		message := res.Error
		if message == "" {
			message = registerFallbackMessage
		}
		return Result{Message: message}
	}

	s.adoptCookies(cookies)
	s.CheckSession(ctx)
	return Result{OK: true, Role: res.Role, Profile: res.User}
}

// Logout requests backend sign-out and resets to anonymous regardless of the
// backend's answer. A failed logout call must never leave the client
// believing the user is still signed in.
func (s *Store) Logout(ctx context.Context) Session {
	cookies, err := s.client.Logout(ctx, s.Cookies())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		for _, cookie := range cookies {
			s.cookies[cookie.Name] = cookie
		}
	}
	s.resolved = true
	s.identity = nil
	return Session{Resolved: true, Identity: nil}
}

func (s *Store) adoptCookies(cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cookie := range cookies {
		s.cookies[cookie.Name] = cookie
	}
}

func (s *Store) mergeCookies(cookies []*http.Cookie) {
	for _, cookie := range cookies {
		s.cookies[cookie.Name] = cookie
	}
}
