package http

import "html/template"

// Minimal server-rendered pages. Layout and styling are deliberately bare;
// the gateway's job is session handling, not presentation.
var pages = template.Must(template.New("pages").Parse(`
{{define "head"}}<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>{{.Title}} - MetroEval</title></head><body>
<h1>{{.Title}}</h1>
{{if .Identity}}<p>Signed in as {{.Identity.Name}} ({{.Identity.Email}}) <a href="/logout">Sign out</a></p>{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}{{end}}

{{define "foot"}}</body></html>{{end}}

{{define "loading"}}{{template "head" .}}<p>Loading...</p>{{template "foot" .}}{{end}}

{{define "index"}}{{template "head" .}}
<p>Welcome to MetroEval, the Metropolia learning platform.</p>
<p><a href="/login">Sign in</a> or <a href="/register">create an account</a>.</p>
{{template "foot" .}}{{end}}

{{define "about"}}{{template "head" .}}
<p>MetroEval helps students and teachers track submissions, feedback, and learning resources.</p>
{{template "foot" .}}{{end}}

{{define "login"}}{{template "head" .}}
<form method="post" action="/login">
<label>Email <input type="email" name="email" value="{{.Email}}"></label>
<label>Password <input type="password" name="password"></label>
<button type="submit">Sign in</button>
</form>
<p><a href="/register">Need an account?</a></p>
{{template "foot" .}}{{end}}

{{define "register"}}{{template "head" .}}
{{if .Password}}<p>Suggested password: <code>{{.Password}}</code></p>{{end}}
<form method="post" action="/register">
<label>Email <input type="email" name="email" value="{{.Email}}"></label>
<label>Password <input type="password" name="password" value="{{.Password}}"></label>
<a href="/register?suggest=1">Suggest a password</a>
<label>Name <input type="text" name="name" value="{{.Name}}"></label>
<label>Role <select name="role">
<option value="student"{{if eq .Role "student"}} selected{{end}}>Student</option>
<option value="teacher"{{if eq .Role "teacher"}} selected{{end}}>Teacher</option>
</select></label>
<label>Department <select name="department">
{{range .Departments}}<option value="{{.}}"{{if eq . $.Department}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<button type="submit">Register</button>
</form>
{{template "foot" .}}{{end}}

{{define "dashboard"}}{{template "head" .}}
<p>Department: {{.Department}}</p>
<form method="post" action="/department">
<select name="department">
{{range .Departments}}<option value="{{.}}"{{if eq . $.Department}} selected{{end}}>{{.}}</option>{{end}}
</select>
<button type="submit">Update department</button>
</form>
<p><a href="/bookmarks">Bookmarks</a> | <a href="/profile">Profile</a></p>
{{template "foot" .}}{{end}}

{{define "teacher-dashboard"}}{{template "head" .}}
<p>Teacher tools for {{.Department}}.</p>
<p><a href="/bookmarks">Bookmarks</a> | <a href="/profile">Profile</a></p>
{{template "foot" .}}{{end}}

{{define "profile"}}{{template "head" .}}
<dl>
<dt>Name</dt><dd>{{.Identity.Name}}</dd>
<dt>Email</dt><dd>{{.Identity.Email}}</dd>
<dt>Role</dt><dd>{{.Identity.Role}}</dd>
<dt>Department</dt><dd>{{.Department}}</dd>
</dl>
{{template "foot" .}}{{end}}

{{define "bookmarks"}}{{template "head" .}}
<form method="get" action="/bookmarks">
<input type="text" name="q" value="{{.Search}}" placeholder="Search bookmarks">
<select name="type">
<option value="all">All</option>
<option value="submission"{{if eq .TypeFilter "submission"}} selected{{end}}>Submissions</option>
<option value="resource"{{if eq .TypeFilter "resource"}} selected{{end}}>Resources</option>
<option value="flashcard"{{if eq .TypeFilter "flashcard"}} selected{{end}}>Flashcards</option>
</select>
<button type="submit">Filter</button>
</form>
<ul>
{{range .Bookmarks}}<li>
<strong>{{.Title}}</strong> ({{.Type}}) {{.Subtitle}}
{{if .Notes}}<em>{{.Notes}}</em>{{end}}
{{if .Metadata}}<ul class="metadata">{{range .Metadata}}<li>{{.}}</li>{{end}}</ul>{{end}}
<form method="post" action="/bookmarks/{{.ID}}/delete"><button type="submit">Remove</button></form>
</li>{{else}}<li>No bookmarks yet.</li>{{end}}
</ul>
{{template "foot" .}}{{end}}
`))

type pageData struct {
	Title    string
	Identity *identityView
	Error    string

	// credential forms
	Email      string
	Name       string
	Role       string
	Department string
	Password   string

	Departments []string

	// bookmarks page
	Bookmarks  []bookmarkView
	TypeFilter string
	Search     string
}

type identityView struct {
	Name  string
	Email string
	Role  string
}

type bookmarkView struct {
	ID       string
	Type     string
	Title    string
	Subtitle string
	Notes    string
	Link     string
	Metadata []string
}
