// Package form declares the input shapes accepted by the HTML forms and
// validates them into per-field messages.
package form

import "strings"

// Registration is the sign-up form.
type Registration struct {
	Username        string `form:"username" validate:"required,min=2,max=20"`
	Email           string `form:"email" validate:"required,email"`
	FullName        string `form:"full_name" validate:"required,min=2,max=50"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// Login is the sign-in form.
type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// EditProfile is the profile edit form.
type EditProfile struct {
	Username string `form:"username" validate:"required,min=2,max=20"`
	Email    string `form:"email" validate:"required,email"`
	FullName string `form:"full_name" validate:"required,min=2,max=50"`
}

// DeleteAccount asks for the password again before deleting.
type DeleteAccount struct {
	Password string `form:"password" validate:"required"`
}

// Search is the catalog search box.
type Search struct {
	SearchQuery string `form:"search_query" validate:"required"`
}

// EditPassword is declared for the password change page, which is not routed yet.
type EditPassword struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required,eqfield=ConfirmPassword"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// Normalize trims surrounding whitespace from free-text fields. Passwords
// are left untouched.
func (f *Registration) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FullName = strings.TrimSpace(f.FullName)
}

// Normalize trims surrounding whitespace from the email.
func (f *Login) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// Normalize trims surrounding whitespace from free-text fields.
func (f *EditProfile) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FullName = strings.TrimSpace(f.FullName)
}

// Normalize trims the query so a blank box fails validation.
func (f *Search) Normalize() {
	f.SearchQuery = strings.TrimSpace(f.SearchQuery)
}
