package authform

// OutcomeKind is the result of one Submit call.
type OutcomeKind string

const (
	OutcomeInvalid   OutcomeKind = "invalid" // field errors, nothing sent
	OutcomeBusy      OutcomeKind = "busy"    // another submission in flight
	OutcomeSucceeded OutcomeKind = "succeeded"
	OutcomeFailed    OutcomeKind = "failed" // backend call failed, see Class
)

type Outcome struct {
	Kind    OutcomeKind
	Mode    Mode
	Class   FailureClass // set for OutcomeFailed
	Notice  string       // what the Notifier was told, if anything
	Route   string       // where the Navigator was sent, if anywhere
	IsAdmin bool
	Errors  ValidationErrors
	Err     error
}
