// Package http is the MetroEval frontend gateway: it resolves the visitor's
// session against the backend on every request, applies the route guards,
// and serves the authentication and bookmark pages.
package http

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"metroeval/frontend/internal/backend"
	"metroeval/frontend/internal/bookmarks"
	"metroeval/frontend/internal/config"
	"metroeval/frontend/internal/department"
	"metroeval/frontend/internal/forms"
	"metroeval/frontend/internal/guard"
	"metroeval/frontend/internal/model"
	"metroeval/frontend/internal/nav"
	"metroeval/frontend/internal/ratelimit"
	"metroeval/frontend/internal/session"
)

type Server struct {
	cfg     config.Config
	client  *backend.Client
	limiter *ratelimit.Limiter
}

func NewServer(cfg config.Config, client *backend.Client, limiter *ratelimit.Limiter) *Server {
	return &Server{cfg: cfg, client: client, limiter: limiter}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.resolveSession, s.openGuard)
		r.Get(nav.PathIndex, s.handleIndex)
		r.Get(nav.PathAbout, s.handleAbout)
		r.Get(nav.PathLogin, s.handleLoginPage)
		r.Post(nav.PathLogin, s.handleLoginSubmit)
		r.Get(nav.PathRegister, s.handleRegisterPage)
		r.Post(nav.PathRegister, s.handleRegisterSubmit)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.resolveSession, s.restrictedGuard(""))
		r.Get(nav.PathDashboard, s.handleDashboard)
		r.Get(nav.PathProfile, s.handleProfile)
		r.Get(nav.PathBookmarks, s.handleBookmarks)
		r.Post("/bookmarks/{bookmarkId}/delete", s.handleDeleteBookmark)
		r.Post("/department", s.handleSetDepartment)
	})

	r.With(s.resolveSession, s.restrictedGuard(model.RoleTeacher)).
		Get(nav.PathTeacherDashboard, s.handleTeacherDashboard)

	r.With(s.resolveSession).Get("/logout", s.handleLogout)

	return r
}

// resolveSession re-derives the session from the backend for every request.
// Each request is a navigation event: sessions can expire or be established
// out-of-band, so there is no cross-request caching.
func (s *Server) resolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := session.NewStore(s.client, r.Cookies())
		sess := store.CheckSession(r.Context())
		if sess.Authenticated() {
			sessionChecks.WithLabelValues("authenticated").Inc()
		} else {
			sessionChecks.WithLabelValues("anonymous").Inc()
		}

		ctx := context.WithValue(r.Context(), storeKey{}, store)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) openGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := guard.Open(storeFromContext(r.Context()).Snapshot(), r.URL.Path)
		s.applyDecision(w, r, decision, next)
	})
}

func (s *Server) restrictedGuard(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := guard.Restricted(storeFromContext(r.Context()).Snapshot(), requiredRole)
			s.applyDecision(w, r, decision, next)
		})
	}
}

func (s *Server) applyDecision(w http.ResponseWriter, r *http.Request, decision guard.Decision, next http.Handler) {
	switch decision.Outcome {
	case guard.Granted:
		next.ServeHTTP(w, r)
	case guard.Denied:
		status := http.StatusFound
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			status = http.StatusSeeOther
		}
		http.Redirect(w, r, decision.RedirectTo, status)
	default:
		// Unreached once resolveSession has run; kept so an unresolved
		// session can never leak guarded content.
		s.render(w, http.StatusOK, "loading", pageData{Title: "Loading"})
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index", pageData{
		Title:    "MetroEval",
		Identity: identityFromContext(r.Context()),
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "about", pageData{
		Title:    "About",
		Identity: identityFromContext(r.Context()),
	})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "login", pageData{Title: "Sign in"})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow(r.Context(), "login:"+clientIP(r)) {
		credentialSubmissions.WithLabelValues("login", "throttled").Inc()
		s.render(w, http.StatusTooManyRequests, "login", pageData{
			Title: "Sign in",
			Error: "Too many attempts. Please try again later.",
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "login", pageData{
			Title: "Sign in",
			Error: "Invalid form submission.",
		})
		return
	}

	store := storeFromContext(r.Context())
	form := forms.NewLogin(store, s.cfg.RequiredEmailDomain)
	form.Email = r.PostFormValue("email")
	form.Password = r.PostFormValue("password")

	destination, ok := form.Submit(r.Context())
	if !ok {
		credentialSubmissions.WithLabelValues("login", "failure").Inc()
		s.render(w, http.StatusOK, "login", pageData{
			Title: "Sign in",
			Error: form.Error,
			Email: form.Email,
		})
		return
	}

	credentialSubmissions.WithLabelValues("login", "success").Inc()
	relayCookies(w, store.Cookies())
	http.Redirect(w, r, destination.To, http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:       "Register",
		Role:        model.RoleStudent,
		Department:  model.DefaultDepartment,
		Departments: model.DepartmentOptions,
	}
	if r.URL.Query().Get("suggest") != "" {
		password, err := forms.GeneratePassword(16)
		if err != nil {
			log.Printf("generate password: %v", err)
		} else {
			data.Password = password
		}
	}
	s.render(w, http.StatusOK, "register", data)
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow(r.Context(), "register:"+clientIP(r)) {
		credentialSubmissions.WithLabelValues("register", "throttled").Inc()
		s.render(w, http.StatusTooManyRequests, "register", pageData{
			Title:       "Register",
			Error:       "Too many attempts. Please try again later.",
			Role:        model.RoleStudent,
			Department:  model.DefaultDepartment,
			Departments: model.DepartmentOptions,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "register", pageData{
			Title:       "Register",
			Error:       "Invalid form submission.",
			Role:        model.RoleStudent,
			Department:  model.DefaultDepartment,
			Departments: model.DepartmentOptions,
		})
		return
	}

	store := storeFromContext(r.Context())
	form := forms.NewRegister(store, s.cfg.RequiredEmailDomain)
	form.Email = r.PostFormValue("email")
	form.Password = r.PostFormValue("password")
	form.Name = r.PostFormValue("name")
	if role := r.PostFormValue("role"); role != "" {
		form.Role = role
	}
	if dept := r.PostFormValue("department"); dept != "" {
		form.Department = dept
	}

	destination, ok := form.Submit(r.Context())
	if !ok {
		credentialSubmissions.WithLabelValues("register", "failure").Inc()
		s.render(w, http.StatusOK, "register", pageData{
			Title:       "Register",
			Error:       form.Error,
			Email:       form.Email,
			Name:        form.Name,
			Role:        form.Role,
			Department:  form.Department,
			Departments: model.DepartmentOptions,
		})
		return
	}

	credentialSubmissions.WithLabelValues("register", "success").Inc()
	relayCookies(w, store.Cookies())
	http.Redirect(w, r, destination.To, http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	store := storeFromContext(r.Context())
	dept := department.NewService(store, s.client)
	s.render(w, http.StatusOK, "dashboard", pageData{
		Title:       "Dashboard",
		Identity:    identityFromContext(r.Context()),
		Department:  dept.Department(),
		Departments: model.DepartmentOptions,
	})
}

func (s *Server) handleTeacherDashboard(w http.ResponseWriter, r *http.Request) {
	store := storeFromContext(r.Context())
	dept := department.NewService(store, s.client)
	s.render(w, http.StatusOK, "teacher-dashboard", pageData{
		Title:      "Teacher Dashboard",
		Identity:   identityFromContext(r.Context()),
		Department: dept.Department(),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	store := storeFromContext(r.Context())
	dept := department.NewService(store, s.client)
	s.render(w, http.StatusOK, "profile", pageData{
		Title:      "Profile",
		Identity:   identityFromContext(r.Context()),
		Department: dept.Department(),
	})
}

func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	store := storeFromContext(r.Context())
	data := pageData{
		Title:      "Bookmarks",
		Identity:   identityFromContext(r.Context()),
		TypeFilter: r.URL.Query().Get("type"),
		Search:     r.URL.Query().Get("q"),
	}

	items, err := s.client.Bookmarks(r.Context(), store.Cookies())
	if err != nil {
		data.Error = "Failed to load bookmarks"
		s.render(w, http.StatusOK, "bookmarks", data)
		return
	}

	for _, item := range bookmarks.Filter(items, data.TypeFilter, data.Search) {
		data.Bookmarks = append(data.Bookmarks, bookmarkView{
			ID:       item.ID,
			Type:     item.Type,
			Title:    item.Title,
			Subtitle: item.Subtitle,
			Notes:    bookmarks.Truncate(item.Notes, 120),
			Link:     item.Link,
			Metadata: bookmarks.MetadataLines(item.Metadata),
		})
	}
	s.render(w, http.StatusOK, "bookmarks", data)
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	store := storeFromContext(r.Context())
	bookmarkID := chi.URLParam(r, "bookmarkId")
	if err := s.client.DeleteBookmark(r.Context(), store.Cookies(), bookmarkID); err != nil {
		log.Printf("delete bookmark %s: %v", bookmarkID, err)
	}
	http.Redirect(w, r, nav.PathBookmarks, http.StatusSeeOther)
}

func (s *Server) handleSetDepartment(w http.ResponseWriter, r *http.Request) {
	store := storeFromContext(r.Context())
	svc := department.NewService(store, s.client)
	if err := svc.Set(r.Context(), r.PostFormValue("department")); err != nil {
		log.Printf("set department: %v", err)
	}
	http.Redirect(w, r, nav.PathDashboard, http.StatusSeeOther)
}

// handleLogout clears the session on both sides. The redirect happens even
// if the backend call failed; the relayed cookies are expired regardless.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	store := storeFromContext(r.Context())
	store.Logout(r.Context())
	expireCookies(w, r.Cookies())
	http.Redirect(w, r, nav.PathIndex, http.StatusSeeOther)
}

type storeKey struct{}

func storeFromContext(ctx context.Context) *session.Store {
	value := ctx.Value(storeKey{})
	store, _ := value.(*session.Store)
	return store
}

func identityFromContext(ctx context.Context) *identityView {
	store := storeFromContext(ctx)
	if store == nil {
		return nil
	}
	identity := store.Snapshot().Identity
	if identity == nil {
		return nil
	}
	return &identityView{Name: identity.Name, Email: identity.Email, Role: identity.Role}
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, page, data); err != nil {
		log.Printf("render %s: %v", page, err)
	}
}

// relayCookies re-issues backend session cookies on the gateway's own
// domain so the browser presents them on the next navigation.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		http.SetCookie(w, &http.Cookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     "/",
			Expires:  cookie.Expires,
			MaxAge:   cookie.MaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// expireCookies clears the backend session cookies on the gateway's domain.
// Unrelated cookies the browser sent are left alone.
func expireCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		if !backend.IsSessionCookie(cookie.Name) {
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:     cookie.Name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
