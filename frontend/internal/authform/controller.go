package authform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/journey-mate/journeymate/shared/api"
	"github.com/journey-mate/journeymate/shared/logger"
)

// TokenKey is the storage key of the session token.
const TokenKey = "token"

const (
	noticeRegistered = "Registered successfully"
	noticeLoggedIn   = "Login successful"
	noticeBusy       = "A submission is already in progress"
)

// AccountsAPI is the backend the form submits to.
type AccountsAPI interface {
	CreateAccount(ctx context.Context, req api.CreateAccountRequest) error
	Authenticate(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
}

// TokenStore is client-side durable storage shared with the rest of the app.
type TokenStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(route string)
}

// Notifier shows a success or failure notice.
type Notifier interface {
	Notify(message string)
}

// Routes are the destinations after a successful submission.
type Routes struct {
	Entry   string
	Admin   string
	Default string
}

var DefaultRoutes = Routes{Entry: "/", Admin: "/admin", Default: "/book"}

// Deps are the collaborators of a Controller. All are required.
type Deps struct {
	Accounts  AccountsAPI
	Tokens    TokenStore
	Navigator Navigator
	Notifier  Notifier
}

type Option func(*Controller)

func WithRoutes(r Routes) Option {
	return func(c *Controller) { c.routes = r }
}

// WithClearOnFailure controls whether typed values survive a failed
// submission. The default clears them.
func WithClearOnFailure(clear bool) Option {
	return func(c *Controller) { c.clearOnFailure = clear }
}

// WithGuard shares an in-flight guard between controllers; key identifies
// the form session.
func WithGuard(g *SubmitGuard, key string) Option {
	return func(c *Controller) {
		c.guard = g
		c.guardKey = key
	}
}

// Controller owns the mode, values and field errors of one form.
type Controller struct {
	deps           Deps
	routes         Routes
	clearOnFailure bool
	guard          *SubmitGuard
	guardKey       string

	mu        sync.Mutex
	mode      Mode
	values    FormValues
	errors    ValidationErrors
	attempted bool // a submit was tried since the last reset; edits re-validate
}

func New(deps Deps, opts ...Option) *Controller {
	c := &Controller{
		deps:           deps,
		routes:         DefaultRoutes,
		clearOnFailure: true,
		guard:          NewSubmitGuard(),
		mode:           ModeLogin,
		errors:         ValidationErrors{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Values() FormValues {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

func (c *Controller) Errors() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.clone()
}

func (c *Controller) VisibleFields() []Field {
	return c.Mode().Fields()
}

// SwitchMode activates a mode control. Values and errors are cleared on
// every activation, including one that selects the current mode.
func (c *Controller) SwitchMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	c.resetLocked()
}

// Set records a keystroke. Fields hidden in the current mode are ignored.
func (c *Controller) Set(f Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mode.Shows(f) {
		return
	}
	c.values.set(f, value)

	if c.attempted {
		if msg, failed := validateValues(c.mode, c.values)[f]; failed {
			c.errors[f] = msg
		} else {
			delete(c.errors, f)
		}
	}
}

// Validate evaluates the current mode's rules and replaces the field errors.
func (c *Controller) Validate() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = validateValues(c.mode, c.values)
	return c.errors.clone()
}

// Reset clears values and errors without changing the mode.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.values.Reset()
	c.errors = ValidationErrors{}
	c.attempted = false
}

// Submit validates the form and, if it passes, runs the mode's backend
// operation. Every backend error is turned into a single notice; Submit
// itself never fails.
func (c *Controller) Submit(ctx context.Context) Outcome {
	release, ok := c.guard.Acquire(c.guardKey)
	if !ok {
		logger.Log.Warn("auth form submission rejected, another one is in flight")
		c.deps.Notifier.Notify(noticeBusy)
		return Outcome{Kind: OutcomeBusy, Mode: c.Mode(), Notice: noticeBusy}
	}
	defer release()

	c.mu.Lock()
	c.attempted = true
	c.errors = validateValues(c.mode, c.values)
	mode, values, errs := c.mode, c.values, c.errors.clone()
	c.mu.Unlock()

	if len(errs) > 0 {
		return Outcome{Kind: OutcomeInvalid, Mode: mode, Errors: errs}
	}

	logger.Log.Info("submitting auth form", "mode", mode.Key(), "email", values.Email)

	var out Outcome
	switch mode {
	case ModeSignUp:
		out = c.signUp(ctx, values)
	default:
		out = c.login(ctx, values)
	}

	if out.Kind == OutcomeSucceeded || c.clearOnFailure {
		c.Reset()
	}
	return out
}

func (c *Controller) signUp(ctx context.Context, v FormValues) Outcome {
	err := c.deps.Accounts.CreateAccount(ctx, api.CreateAccountRequest{
		Username: v.Username,
		Email:    v.Email,
		Password: v.Password,
		Confirm:  v.Confirm,
	})
	if err != nil {
		return c.fail(ModeSignUp, err)
	}

	c.deps.Notifier.Notify(noticeRegistered)
	c.deps.Navigator.Navigate(c.routes.Entry)
	return Outcome{Kind: OutcomeSucceeded, Mode: ModeSignUp, Notice: noticeRegistered, Route: c.routes.Entry}
}

func (c *Controller) login(ctx context.Context, v FormValues) Outcome {
	res, err := c.deps.Accounts.Authenticate(ctx, api.LoginRequest{Email: v.Email, Password: v.Password})
	if err != nil {
		return c.fail(ModeLogin, err)
	}
	if res == nil {
		return c.fail(ModeLogin, errors.New("empty login response"))
	}

	if err := c.deps.Tokens.Set(TokenKey, res.Token); err != nil {
		return c.fail(ModeLogin, fmt.Errorf("persisting session token: %w", err))
	}

	route := c.routes.Default
	if res.IsAdmin {
		route = c.routes.Admin
	}
	c.deps.Notifier.Notify(noticeLoggedIn)
	c.deps.Navigator.Navigate(route)
	return Outcome{Kind: OutcomeSucceeded, Mode: ModeLogin, Notice: noticeLoggedIn, Route: route, IsAdmin: res.IsAdmin}
}

func (c *Controller) fail(m Mode, err error) Outcome {
	class := Classify(err)
	notice := FailureNotice(m, err)
	logger.Log.Error("auth form submission failed", "mode", m.Key(), "class", class, "error", err)
	c.deps.Notifier.Notify(notice)
	return Outcome{Kind: OutcomeFailed, Mode: m, Class: class, Notice: notice, Err: err}
}
