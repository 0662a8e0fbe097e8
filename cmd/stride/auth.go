// ABOUTME: auth subcommands: login, logout, and status for GitHub
// ABOUTME: Login prints the authorize URL and reads the pasted callback

package main

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stridelog/stride/internal/github"
)

func newAuthCmd() *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Manage the GitHub session"}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to GitHub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			state, err := randomState()
			if err != nil {
				return fmt.Errorf("generating state: %w", err)
			}

			fmt.Println("Open this URL in your browser and authorize the app:")
			fmt.Println()
			fmt.Printf("  %s\n", app.session.AuthorizeURL(state))
			fmt.Println()
			fmt.Print("Paste the callback URL (or just the code): ")

			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() {
				return fmt.Errorf("reading callback: %w", scanner.Err())
			}
			code, err := parseCallbackInput(strings.TrimSpace(scanner.Text()), state)
			if err != nil {
				return err
			}

			profile, err := app.session.Authenticate(cmd.Context(), code)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			green.Printf("Signed in as %s\n", profile.Login)
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.session.SignOut()
			fmt.Println("Signed out.")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.session.Resume(cmd.Context()); err != nil {
				return fmt.Errorf("checking stored token: %w", err)
			}

			sess := app.session.Session()
			switch sess.State {
			case github.StateSignedIn:
				fmt.Printf("Signed in as %s", sess.Profile.Login)
				if sess.Profile.Name != "" {
					fmt.Printf(" (%s)", sess.Profile.Name)
				}
				fmt.Println()
			default:
				fmt.Println("Signed out. Run: stride auth login")
			}
			return nil
		},
	}

	auth.AddCommand(loginCmd, logoutCmd, statusCmd)
	return auth
}

// parseCallbackInput accepts either the full callback URL the browser was
// redirected to or a bare authorization code pasted directly.
func parseCallbackInput(input, wantState string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("no callback input provided")
	}
	if !strings.Contains(input, "://") && !strings.Contains(input, "?") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parsing callback URL: %w", err)
	}
	query := u.Query()
	if got := query.Get("state"); got != "" && got != wantState {
		return "", fmt.Errorf("callback state mismatch")
	}
	return github.ParseCallback(query)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
