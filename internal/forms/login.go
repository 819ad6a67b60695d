// Package forms holds the credential submission controllers: local
// validation, the call into the session store, and the post-success
// navigation decision. Form state is transient and owned by the controller.
package forms

import (
	"context"
	"fmt"

	"metroeval/frontend/internal/nav"
	"metroeval/frontend/internal/session"
)

type Login struct {
	store  *session.Store
	domain string

	Email    string
	Password string

	Error      string
	Submitting bool
}

func NewLogin(store *session.Store, domain string) *Login {
	return &Login{store: store, domain: domain}
}

// Submit validates the form and attempts the login. On success it returns
// the role-based landing navigation; on failure it records the error and
// the caller stays on the page. Submitting is cleared on every exit path.
func (f *Login) Submit(ctx context.Context) (nav.Navigation, bool) {
	f.Error = ""
	f.Submitting = true
	defer func() { f.Submitting = false }()

	if !IsInstitutionalEmail(f.Email, f.domain) {
		f.Error = fmt.Sprintf("Login is restricted to %s email addresses.", f.domain)
		return nav.Navigation{}, false
	}

	res := f.store.Login(ctx, f.Email, f.Password)
	if !res.OK {
		f.Error = res.Message
		if f.Error == "" {
			f.Error = "Invalid credentials"
		}
		return nav.Navigation{}, false
	}

	return nav.Navigation{To: nav.LandingFor(res.Role)}, true
}

// Reset returns the form to its initial state.
func (f *Login) Reset() {
	f.Email = ""
	f.Password = ""
	f.Error = ""
	f.Submitting = false
}
