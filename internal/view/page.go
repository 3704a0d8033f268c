package view

import (
	"sneakerfav/internal/catalog"
	"sneakerfav/internal/form"
	"sneakerfav/internal/model"
)

// Viewer is the logged-in user as shown in the navigation bar.
type Viewer struct {
	ID       uint
	Username string
}

// Page is the data every template receives.
type Page struct {
	Title     string
	Viewer    *Viewer
	Notices   []Notice
	CSRFToken string

	// Form holds the submitted or prefilled values of the page's form.
	Form   interface{}
	Errors form.FieldErrors

	Sneakers        []catalog.Sneaker
	Unresolved      []string // saved ids the catalog could not return
	Profile         *model.User
	AttemptedSearch bool
}
