package frontend_domain

// AuthPageData drives auth.html.
type AuthPageData struct {
	Title     string // "Login" or "Sign Up"
	ModeKey   string
	OtherKey  string
	OtherName string
	Fields    []FieldView
}

// FieldView is one visible input with its current value and error.
type FieldView struct {
	Name        string
	Type        string
	Placeholder string
	Value       string
	Error       string
}

type AccountPageData struct {
	Admin bool
}
