package forms

import (
	"context"
	"fmt"

	"metroeval/frontend/internal/backend"
	"metroeval/frontend/internal/model"
	"metroeval/frontend/internal/nav"
	"metroeval/frontend/internal/session"
)

type Register struct {
	store  *session.Store
	domain string

	Email      string
	Password   string
	Name       string
	Role       string
	Department string

	Error      string
	Submitting bool
}

func NewRegister(store *session.Store, domain string) *Register {
	return &Register{
		store:      store,
		domain:     domain,
		Role:       model.RoleStudent,
		Department: model.DefaultDepartment,
	}
}

// Submit validates the form and attempts the registration. The session
// store refreshes the session before Register returns, so the navigation
// issued here never races the refresh.
func (f *Register) Submit(ctx context.Context) (nav.Navigation, bool) {
	f.Error = ""
	f.Submitting = true
	defer func() { f.Submitting = false }()

	if !IsInstitutionalEmail(f.Email, f.domain) {
		f.Error = fmt.Sprintf("Registration is limited to %s email addresses.", f.domain)
		return nav.Navigation{}, false
	}

	res := f.store.Register(ctx, backend.RegisterRequest{
		Email:      f.Email,
		Password:   f.Password,
		Name:       f.Name,
		Role:       f.Role,
		Department: f.Department,
	})
	if !res.OK {
		f.Error = res.Message
		if f.Error == "" {
			f.Error = "Registration failed"
		}
		return nav.Navigation{}, false
	}

	return nav.Navigation{To: nav.LandingFor(res.Role), Replace: true}, true
}

// Reset returns the form to its initial state, with role and department
// back at their defaults.
func (f *Register) Reset() {
	f.Email = ""
	f.Password = ""
	f.Name = ""
	f.Role = model.RoleStudent
	f.Department = model.DefaultDepartment
	f.Error = ""
	f.Submitting = false
}
