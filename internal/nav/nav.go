// Package nav holds the client-side route destinations and the role-based
// landing rule shared by the guards and the credential forms.
package nav

import "metroeval/frontend/internal/model"

const (
	PathIndex            = "/"
	PathAbout            = "/about"
	PathLogin            = "/login"
	PathRegister         = "/register"
	PathDashboard        = "/dashboard"
	PathTeacherDashboard = "/teacher-dashboard"
	PathBookmarks        = "/bookmarks"
	PathProfile          = "/profile"
)

// Navigation describes a redirect decision. Replace indicates the redirect
// should not leave the current destination in the browser history.
type Navigation struct {
	To      string
	Replace bool
}

// LandingFor picks the post-authentication landing destination for a role.
func LandingFor(role string) string {
	if role == model.RoleTeacher {
		return PathTeacherDashboard
	}
	return PathDashboard
}

// IsAuthPath reports whether path is one of the sign-in/registration
// destinations.
func IsAuthPath(path string) bool {
	return path == PathLogin || path == PathRegister
}
