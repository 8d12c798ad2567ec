package api

// Request DTOs

// CreateAccountRequest is the body of POST /api/users/add.
type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response DTOs

// LoginResponse is the part of a successful login body the frontend reads.
// The backend may send more fields; they are ignored.
type LoginResponse struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
}

// ErrorResponse is the optional body of a failed call.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SubmitRequest is the body of the frontend's own JSON submit endpoint.
type SubmitRequest struct {
	Mode     string `json:"mode"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// SubmitResponse reports a submission outcome to script-driven pages.
type SubmitResponse struct {
	Outcome string            `json:"outcome"`
	Class   string            `json:"class,omitempty"`
	Notice  string            `json:"notice,omitempty"`
	Route   string            `json:"route,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
