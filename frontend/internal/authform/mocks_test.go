package authform

import (
	"context"

	"github.com/journey-mate/journeymate/shared/api"
)

type MockAccounts struct {
	MockCreateAccount func(ctx context.Context, req api.CreateAccountRequest) error
	MockAuthenticate  func(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)

	createCalls []api.CreateAccountRequest
	loginCalls  []api.LoginRequest
}

func (m *MockAccounts) CreateAccount(ctx context.Context, req api.CreateAccountRequest) error {
	m.createCalls = append(m.createCalls, req)
	if m.MockCreateAccount != nil {
		return m.MockCreateAccount(ctx, req)
	}
	return nil
}

func (m *MockAccounts) Authenticate(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	m.loginCalls = append(m.loginCalls, req)
	if m.MockAuthenticate != nil {
		return m.MockAuthenticate(ctx, req)
	}
	return &api.LoginResponse{}, nil
}

type memTokens struct {
	data   map[string]string
	setErr error
}

func (s *memTokens) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *memTokens) Set(key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	s.data[key] = value
	return nil
}

type recorder struct {
	routes  []string
	notices []string
}

func (r *recorder) Navigate(route string) { r.routes = append(r.routes, route) }
func (r *recorder) Notify(message string) { r.notices = append(r.notices, message) }

type fixture struct {
	accounts *MockAccounts
	tokens   *memTokens
	rec      *recorder
	c        *Controller
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{accounts: &MockAccounts{}, tokens: &memTokens{}, rec: &recorder{}}
	f.c = New(Deps{Accounts: f.accounts, Tokens: f.tokens, Navigator: f.rec, Notifier: f.rec}, opts...)
	return f
}

func (f *fixture) fillSignUp() {
	f.c.SwitchMode(ModeSignUp)
	f.c.Set(FieldUsername, "john_doe")
	f.c.Set(FieldEmail, "john@example.com")
	f.c.Set(FieldPassword, "123456")
	f.c.Set(FieldConfirm, "123456")
}

func (f *fixture) fillLogin() {
	f.c.SwitchMode(ModeLogin)
	f.c.Set(FieldEmail, "john@example.com")
	f.c.Set(FieldPassword, "123456")
}
