package term

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/journey-mate/journeymate/frontend/internal/authform"
)

var (
	noticeColor = color.New(color.Bold, color.FgHiMagenta)
	errorColor  = color.New(color.FgHiRed)
	routeColor  = color.New(color.Bold, color.FgHiGreen)
)

// Console is the terminal's Navigator and Notifier.
type Console struct {
	out   io.Writer
	route string
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(message string) {
	noticeColor.Fprintln(c.out, message)
}

// Navigate has nowhere to go in a terminal; it records and prints the route.
func (c *Console) Navigate(route string) {
	c.route = route
	routeColor.Fprintf(c.out, "→ %s\n", route)
}

// Route is the last route navigated to.
func (c *Console) Route() string { return c.route }

func (c *Console) fieldErrors(m authform.Mode, errs authform.ValidationErrors) {
	for _, f := range m.Fields() {
		if msg, ok := errs[f]; ok {
			errorColor.Fprintf(c.out, "  %s: %s\n", f.Label(), msg)
		}
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
