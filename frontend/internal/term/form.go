package term

import (
	"context"
	"errors"
	"fmt"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
)

// ErrTooManyAttempts is returned when validation keeps failing.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// RunForm prompts for every visible field of c's mode and submits. Fields
// that fail validation are asked again, up to maxAttempts submissions.
func RunForm(ctx context.Context, c *authform.Controller, p *Prompter, console *Console, maxAttempts int) (authform.Outcome, error) {
	console.printf("%s\n", c.Mode())

	pending := c.VisibleFields()
	var out authform.Outcome
	for attempt := 0; attempt < maxAttempts; attempt++ {
		for _, f := range pending {
			value, err := ask(p, f)
			if err != nil {
				return out, err
			}
			c.Set(f, value)
		}

		out = c.Submit(ctx)
		if out.Kind != authform.OutcomeInvalid {
			return out, nil
		}

		console.fieldErrors(c.Mode(), out.Errors)
		pending = failingFields(c.Mode(), out.Errors)
	}
	return out, fmt.Errorf("%s: %w", c.Mode(), ErrTooManyAttempts)
}

func ask(p *Prompter, f authform.Field) (string, error) {
	if f.Secret() {
		return p.AskSecret(f.Label())
	}
	return p.Ask(f.Label())
}

// failingFields keeps display order. A new password always needs a new
// confirmation.
func failingFields(m authform.Mode, errs authform.ValidationErrors) []authform.Field {
	_, passwordFailed := errs[authform.FieldPassword]
	var fields []authform.Field
	for _, f := range m.Fields() {
		_, failed := errs[f]
		if failed || (f == authform.FieldConfirm && passwordFailed) {
			fields = append(fields, f)
		}
	}
	return fields
}
