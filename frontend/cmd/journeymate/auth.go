package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/journey-mate/journeymate/frontend/internal/apiclient"
	"github.com/journey-mate/journeymate/frontend/internal/authform"
	"github.com/journey-mate/journeymate/frontend/internal/session"
	"github.com/journey-mate/journeymate/frontend/internal/term"
	"github.com/journey-mate/journeymate/shared/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd, authform.ModeLogin)
	},
}

var signupCmd = &cobra.Command{
	Use:     "signup",
	Aliases: []string{"sign-up", "register"},
	Short:   "Create an account",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm(cmd, authform.ModeSignUp)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.NewFileStore(storePath).Delete(authform.TokenKey); err != nil {
			return fmt.Errorf("removing token: %w", err)
		}
		color.New(color.FgHiGreen).Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show whether a session token is stored",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := session.NewFileStore(storePath)
		if _, ok := store.Get(authform.TokenKey); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in (token in %s)\n", store.Path())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().IntVar(&attempts, "attempts", 3, "how many times to re-ask invalid fields")
	}
}

func runForm(cmd *cobra.Command, mode authform.Mode) error {
	cfg := config.FromEnv()
	console := term.NewConsole(cmd.OutOrStdout())

	ctrl := authform.New(
		authform.Deps{
			Accounts:  apiclient.New(apiURL, cfg.Public.Api.Timeout),
			Tokens:    session.NewFileStore(storePath),
			Navigator: console,
			Notifier:  console,
		},
		authform.WithClearOnFailure(cfg.Public.Form.ShouldClearOnFailure()),
	)
	ctrl.SwitchMode(mode)

	out, err := term.RunForm(cmd.Context(), ctrl, term.NewPrompter(os.Stdin, cmd.OutOrStdout()), console, attempts)
	if err != nil {
		return err
	}
	if out.Kind == authform.OutcomeFailed {
		return fmt.Errorf("%s failed (%s)", mode, out.Class)
	}
	return nil
}
