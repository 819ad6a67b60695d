package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"metroeval/frontend/internal/backend"
	"metroeval/frontend/internal/model"
	"metroeval/frontend/internal/nav"
	"metroeval/frontend/internal/session"
)

const domain = "@metropolia.fi"

func TestIsInstitutionalEmail(t *testing.T) {
	cases := map[string]bool{
		"a@metropolia.fi":          true,
		"A@METROPOLIA.FI":          true,
		"  a@metropolia.fi  ":      true,
		"a@metropolia.fi.evil.com": false,
		"a@gmail.com":              false,
		"":                         false,
	}
	for value, want := range cases {
		if got := IsInstitutionalEmail(value, domain); got != want {
			t.Fatalf("IsInstitutionalEmail(%q) = %v, expected %v", value, got, want)
		}
	}
}

// authBackend counts hits so tests can assert that local validation
// failures never reach the network.
type authBackend struct {
	srv   *httptest.Server
	calls int
	role  string
	fail  bool
}

func newAuthBackend(t *testing.T) *authBackend {
	t.Helper()
	ab := &authBackend{role: "student"}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "id": "u1", "role": ab.role,
		})
	})
	handleAuth := func(w http.ResponseWriter, r *http.Request) {
		ab.calls++
		if ab.fail {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "Invalid credentials"})
			return
		}
		_ = r.ParseForm()
		if role := r.PostFormValue("role"); role != "" {
			ab.role = role
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1"})
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "role": ab.role,
			"user": map[string]string{"id": "u1", "role": ab.role},
		})
	}
	mux.HandleFunc("/v1/login", handleAuth)
	mux.HandleFunc("/v1/register", handleAuth)

	ab.srv = httptest.NewServer(mux)
	t.Cleanup(ab.srv.Close)
	return ab
}

func (ab *authBackend) store() *session.Store {
	return session.NewStore(backend.New(ab.srv.URL, 2*time.Second), nil)
}

func TestLoginSubmitRejectsForeignDomainLocally(t *testing.T) {
	ab := newAuthBackend(t)
	form := NewLogin(ab.store(), domain)
	form.Email = "a@gmail.com"
	form.Password = "pw"

	if _, ok := form.Submit(context.Background()); ok {
		t.Fatalf("expected rejection")
	}
	if !strings.Contains(form.Error, "@metropolia.fi") {
		t.Fatalf("expected domain policy message, got %q", form.Error)
	}
	if form.Submitting {
		t.Fatalf("submitting flag not cleared")
	}
	if ab.calls != 0 {
		t.Fatalf("validation failure must not contact the backend, saw %d calls", ab.calls)
	}
}

func TestLoginSubmitSurfacesBackendMessage(t *testing.T) {
	ab := newAuthBackend(t)
	ab.fail = true
	form := NewLogin(ab.store(), domain)
	form.Email = "a@metropolia.fi"
	form.Password = "bad"

	destination, ok := form.Submit(context.Background())
	if ok {
		t.Fatalf("expected failure")
	}
	if form.Error != "Invalid credentials" {
		t.Fatalf("expected backend message, got %q", form.Error)
	}
	if form.Submitting {
		t.Fatalf("submitting flag not cleared")
	}
	if destination.To != "" {
		t.Fatalf("no navigation on failure, got %+v", destination)
	}
}

func TestLoginSubmitNavigatesByRole(t *testing.T) {
	ab := newAuthBackend(t)
	ab.role = "teacher"
	form := NewLogin(ab.store(), domain)
	form.Email = "a@metropolia.fi"
	form.Password = "pw"

	destination, ok := form.Submit(context.Background())
	if !ok {
		t.Fatalf("expected success, error %q", form.Error)
	}
	if destination.To != nav.PathTeacherDashboard {
		t.Fatalf("expected teacher landing, got %+v", destination)
	}
	if ab.calls != 1 {
		t.Fatalf("expected exactly one login call, saw %d", ab.calls)
	}
}

func TestLoginReset(t *testing.T) {
	form := NewLogin(nil, domain)
	form.Email = "a@metropolia.fi"
	form.Password = "pw"
	form.Error = "boom"
	form.Submitting = true

	form.Reset()
	if form.Email != "" || form.Password != "" || form.Error != "" || form.Submitting {
		t.Fatalf("reset left state behind: %+v", form)
	}
}

func TestRegisterDefaults(t *testing.T) {
	form := NewRegister(nil, domain)
	if form.Role != model.RoleStudent {
		t.Fatalf("expected default role student, got %q", form.Role)
	}
	if form.Department != model.DefaultDepartment {
		t.Fatalf("expected default department, got %q", form.Department)
	}
}

func TestRegisterSubmitReplacesHistory(t *testing.T) {
	ab := newAuthBackend(t)
	form := NewRegister(ab.store(), domain)
	form.Email = "b@metropolia.fi"
	form.Password = "pw"
	form.Name = "Bea"
	form.Role = "teacher"

	destination, ok := form.Submit(context.Background())
	if !ok {
		t.Fatalf("expected success, error %q", form.Error)
	}
	if destination.To != nav.PathTeacherDashboard || !destination.Replace {
		t.Fatalf("expected replace-navigation to teacher landing, got %+v", destination)
	}
}

func TestRegisterSubmitRejectsForeignDomainLocally(t *testing.T) {
	ab := newAuthBackend(t)
	form := NewRegister(ab.store(), domain)
	form.Email = "b@metropolia.fi.evil.com"
	form.Password = "pw"
	form.Name = "Bea"

	if _, ok := form.Submit(context.Background()); ok {
		t.Fatalf("expected rejection")
	}
	if ab.calls != 0 {
		t.Fatalf("validation failure must not contact the backend")
	}
}

func TestRegisterReset(t *testing.T) {
	form := NewRegister(nil, domain)
	form.Email = "b@metropolia.fi"
	form.Password = "pw"
	form.Name = "Bea"
	form.Role = "teacher"
	form.Department = "Business & Economics"
	form.Error = "boom"
	form.Submitting = true

	form.Reset()
	if form.Email != "" || form.Password != "" || form.Name != "" {
		t.Fatalf("reset left fields behind: %+v", form)
	}
	if form.Role != model.RoleStudent || form.Department != model.DefaultDepartment {
		t.Fatalf("reset did not restore defaults: %+v", form)
	}
	if form.Error != "" || form.Submitting {
		t.Fatalf("reset did not clear error/loading: %+v", form)
	}
}

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword(16)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(password) != 16 {
		t.Fatalf("expected 16 chars, got %d", len(password))
	}
	if !strings.ContainsAny(password, passwordUppercase) ||
		!strings.ContainsAny(password, passwordLowercase) ||
		!strings.ContainsAny(password, passwordDigits) ||
		!strings.ContainsAny(password, passwordSymbols) {
		t.Fatalf("password missing a required character class: %q", password)
	}

	if _, err := GeneratePassword(3); err == nil {
		t.Fatalf("expected error for too-short length")
	}
}
