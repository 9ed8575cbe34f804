package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// renderPage writes an HTML page response. Render failures after the header
// has been written can only be logged.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, statusCode int, page Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := page.Render(w); err != nil {
		logger.FromRequest(r).Err(err).Msg("page rendering failed")
	}
}

// layout wraps page content in the shared HTML shell.
func layout(title string, user *models.User, content ...Node) Node {
	var nav Node
	if user != nil {
		navItems := []Node{
			A(Href("/"), Text("Home")),
			A(Href("/documents"), Text("Documents")),
		}
		if user.IsStaff {
			navItems = append(navItems, A(Href("/admin/users"), Text("Users")))
		}
		navItems = append(navItems,
			Span(Class("nav-user"), Text(user.Login)),
			Form(
				Method("post"),
				Action("/logout"),
				Class("logout-form"),
				Button(Type("submit"), Class("btn btn-link"), Text("Log out")),
			),
		)
		nav = Nav(Class("topnav"), Group(navItems))
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Access Portal")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
		),
		Body(
			nav,
			Main(Class("container-md p-4"), Group(content)),
		),
	)
}

// loginPage renders the login form. A non-empty errMsg re-renders the form
// with the failure message above it; next is carried through as a hidden
// field so a successful login can return the user to the page they wanted.
func loginPage(errMsg, next string) Node {
	content := []Node{
		H1(Text("Access Portal")),
		P(Text("Sign in with your portal account.")),
		Form(
			Method("post"),
			Action("/login"),
			Class("login-form"),
			Input(Type("hidden"), Name("next"), Value(next)),
			Label(For("login"), Text("Login")),
			Input(Type("text"), ID("login"), Name("login"), Required(), AutoFocus()),
			Label(For("password"), Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required()),
			Button(Type("submit"), Class("btn btn-primary"), Text("Sign In")),
		),
	}
	if errMsg != "" {
		content = append([]Node{P(Class("flash flash-error"), Text(errMsg))}, content...)
	}

	return layout("Sign in", nil, content...)
}

// homePage is the landing page after login.
func homePage(user models.User) Node {
	name := user.Name
	if name == "" {
		name = user.Login
	}

	return layout("Home", &user,
		H1(Text(fmt.Sprintf("Welcome, %s", name))),
		P(Text("Use the navigation above to browse the protected documents.")),
	)
}

// documentsPage lists the protected documents with download links.
func documentsPage(user models.User, docs []models.DocumentInfo) Node {
	rows := make([]Node, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, Tr(
			Td(A(Href("/documents/"+doc.Name), Text(doc.Name))),
			Td(Text(fmt.Sprintf("%d bytes", doc.Size))),
		))
	}

	var body Node
	if len(rows) == 0 {
		body = P(Text("No documents available."))
	} else {
		body = Table(
			Class("documents-table"),
			THead(Tr(Th(Text("Name")), Th(Text("Size")))),
			TBody(rows...),
		)
	}

	return layout("Documents", &user,
		H1(Text("Documents")),
		body,
	)
}

// adminUsersPage renders the staff-only user table.
func adminUsersPage(user models.User, users []models.User) Node {
	rows := make([]Node, 0, len(users))
	for _, u := range users {
		status := "active"
		if !u.IsActive {
			status = "inactive"
		}
		staff := ""
		if u.IsStaff {
			staff = "staff"
		}
		groups := ""
		for i, name := range u.GroupNames() {
			if i > 0 {
				groups += ", "
			}
			groups += name
		}
		rows = append(rows, Tr(
			Td(Text(u.Login)),
			Td(Text(u.Name)),
			Td(Text(staff)),
			Td(Text(status)),
			Td(Text(groups)),
		))
	}

	return layout("Users", &user,
		H1(Text("Users")),
		Table(
			Class("users-table"),
			THead(Tr(Th(Text("Login")), Th(Text("Name")), Th(Text("Staff")), Th(Text("Status")), Th(Text("Groups")))),
			TBody(rows...),
		),
	)
}
