// Package authform implements the combined login / sign-up form: which
// fields a mode shows, how they are validated and how a submission is
// dispatched to the backend and routed afterwards.
package authform

import (
	"fmt"
	"strings"
)

// Mode selects the field set, rule set and backend operation of the form.
type Mode uint8

const (
	ModeLogin Mode = iota
	ModeSignUp
)

// String is the action name shown to users ("Login failed: ...").
func (m Mode) String() string {
	switch m {
	case ModeSignUp:
		return "Sign Up"
	default:
		return "Login"
	}
}

// Key is the URL/form representation of the mode.
func (m Mode) Key() string {
	switch m {
	case ModeSignUp:
		return "signup"
	default:
		return "login"
	}
}

// Other returns the mode the switch control leads to.
func (m Mode) Other() Mode {
	if m == ModeSignUp {
		return ModeLogin
	}
	return ModeSignUp
}

// Fields lists the visible fields in display order.
func (m Mode) Fields() []Field {
	switch m {
	case ModeSignUp:
		return []Field{FieldUsername, FieldEmail, FieldPassword, FieldConfirm}
	default:
		return []Field{FieldEmail, FieldPassword}
	}
}

// Shows reports whether f is visible (and therefore required) in m.
func (m Mode) Shows(f Field) bool {
	for _, v := range m.Fields() {
		if v == f {
			return true
		}
	}
	return false
}

// ParseMode accepts the keys produced by Key as well as the display names.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "login", "log in", "signin", "sign-in":
		return ModeLogin, nil
	case "signup", "sign-up", "sign up", "register":
		return ModeSignUp, nil
	}
	return ModeLogin, fmt.Errorf("unknown form mode %q", s)
}

// Field names a form input.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
	FieldConfirm  Field = "confirm"
)

// Label is the placeholder text of the field's input.
func (f Field) Label() string {
	switch f {
	case FieldUsername:
		return "Name"
	case FieldEmail:
		return "Email Id"
	case FieldPassword:
		return "Password"
	case FieldConfirm:
		return "Re-Password"
	}
	return string(f)
}

// Secret fields are never echoed back.
func (f Field) Secret() bool {
	return f == FieldPassword || f == FieldConfirm
}

// FormValues holds what the user typed. Username and Confirm are only
// meaningful in ModeSignUp.
type FormValues struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

func (v *FormValues) Reset() { *v = FormValues{} }

func (v FormValues) Get(f Field) string {
	switch f {
	case FieldUsername:
		return v.Username
	case FieldEmail:
		return v.Email
	case FieldPassword:
		return v.Password
	case FieldConfirm:
		return v.Confirm
	}
	return ""
}

func (v *FormValues) set(f Field, value string) {
	switch f {
	case FieldUsername:
		v.Username = value
	case FieldEmail:
		v.Email = value
	case FieldPassword:
		v.Password = value
	case FieldConfirm:
		v.Confirm = value
	}
}

// ValidationErrors maps a failing field to its message.
type ValidationErrors map[Field]string

func (e ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Strings is the JSON-friendly form of e.
func (e ValidationErrors) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[string(k)] = v
	}
	return out
}
