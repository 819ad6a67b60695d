// Package guard decides whether a destination may be rendered for the
// current session. Decisions are pure functions of the session snapshot and
// the destination path; applying them (rendering, redirecting) is the
// caller's job.
package guard

import (
	"metroeval/frontend/internal/nav"
	"metroeval/frontend/internal/session"
)

type Outcome int

const (
	// Pending: the session has not been resolved against the backend yet;
	// show a transient loading view, never a redirect.
	Pending Outcome = iota
	// Granted: render the requested content unchanged.
	Granted
	// Denied: redirect to RedirectTo instead of rendering.
	Denied
)

type Decision struct {
	Outcome    Outcome
	RedirectTo string
	Replace    bool
}

// Restricted gates content that requires an authenticated user. Anonymous
// visitors are redirected to the sign-in destination, replacing history so
// back-navigation does not return to the guarded page.
//
// requiredRole is accepted but not enforced here; role checks are left to
// the backend. Known gap, kept deliberately until a decision on client-side
// enforcement is made.
func Restricted(s session.Session, requiredRole string) Decision {
	_ = requiredRole

	if !s.Resolved {
		return Decision{Outcome: Pending}
	}
	if !s.Authenticated() {
		return Decision{Outcome: Denied, RedirectTo: nav.PathLogin, Replace: true}
	}
	return Decision{Outcome: Granted}
}

// Open gates public content. Authenticated users may browse public pages
// normally, but are bounced from the sign-in/registration destinations to
// their role's landing page so they cannot re-enter the auth flow.
func Open(s session.Session, path string) Decision {
	if !s.Resolved {
		return Decision{Outcome: Pending}
	}
	if s.Authenticated() && nav.IsAuthPath(path) {
		return Decision{Outcome: Denied, RedirectTo: nav.LandingFor(s.Identity.Role), Replace: true}
	}
	return Decision{Outcome: Granted}
}
