package shell

import (
	"github.com/a-h/templ"

	"github.com/autoresum/autoresum-web/internal/views"
	"github.com/autoresum/autoresum-web/pkg/boundary"
	"github.com/autoresum/autoresum-web/pkg/routes"
)

// NewTable builds the route table of the application. Each view is marked
// with its route name so render failures report where they happened.
func NewTable(theme views.Theme, pages *views.Pages) *routes.Table {
	entry := func(path, name string, group routes.Group, view templ.Component) routes.Entry {
		return routes.Entry{Path: path, Name: name, Group: group, View: boundary.Named(name, view)}
	}

	return routes.MustTable(
		entry("/", "Home", routes.Main, views.Home(theme)),
		entry("/features", "Features", routes.Main, views.Section("Features", "Everything you need to land the interview.")),
		entry("/pricing", "Pricing", routes.Main, views.Section("Pricing", "Start free, upgrade when you need more.")),
		entry("/about", "About", routes.Main, pages.Component("about")),
		entry("/privacy", "Privacy", routes.Main, pages.Component("privacy")),
		entry("/terms", "Terms", routes.Main, pages.Component("terms")),

		entry("/login", "Sign in", routes.Auth, views.AuthForm("Sign in", "/login", "Sign in", "email", "password")),
		entry("/register", "Create account", routes.Auth, views.AuthForm("Create your account", "/register", "Create account", "name", "email", "password")),
		entry("/forgot-password", "Forgot password", routes.Auth, views.AuthForm("Reset your password", "/forgot-password", "Send reset link", "email")),
		entry("/reset-password", "Reset password", routes.Auth, views.AuthForm("Choose a new password", "/reset-password", "Save password", "password", "confirm_password")),

		entry("/dashboard", "Overview", routes.Dashboard, views.Section("Overview", "")),
		entry("/dashboard/resumes", "Resumes", routes.Dashboard, views.Section("Resumes", "")),
		entry("/dashboard/cover-letters", "Cover letters", routes.Dashboard, views.Section("Cover letters", "")),
		entry("/dashboard/subscription", "Subscription", routes.Dashboard, views.Section("Subscription", "")),
		entry("/dashboard/payments", "Payments", routes.Dashboard, views.Section("Payments", "")),
		entry("/dashboard/profile", "Profile", routes.Dashboard, views.Section("Profile", "")),

		entry("/resume/new", "New resume", routes.Base, views.Editor("New resume", "resume")),
		entry("/resume/edit", "Edit resume", routes.Base, views.Editor("Edit resume", "resume")),
		entry("/resume/preview", "Resume preview", routes.Base, views.Editor("Preview", "resume-preview")),
		entry("/cover-letter/new", "New cover letter", routes.Base, views.Editor("New cover letter", "cover-letter")),
		entry("/cover-letter/edit", "Edit cover letter", routes.Base, views.Editor("Edit cover letter", "cover-letter")),
	)
}
