package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	Home          = "home"
	Search        = "search"
	Login         = "login"
	Register      = "register"
	Profile       = "profile"
	EditProfile   = "edit_profile"
	DeleteAccount = "delete_account"
	Favorites     = "favorites"
)

var pageNames = []string{Home, Search, Login, Register, Profile, EditProfile, DeleteAccount, Favorites}

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

var funcs = template.FuncMap{
	"alert": func(category string) string {
		switch category {
		case Success:
			return "success"
		case Info:
			return "info"
		default:
			return "danger"
		}
	},
}
