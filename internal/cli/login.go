package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/coworkcli/cowork/internal/auth"
)

func newLoginCommand(app func() *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			if email == "" {
				email = os.Getenv("COSOFT_EMAIL")
			}
			if password == "" {
				password = os.Getenv("COSOFT_PASSWORD")
			}

			var err error
			if email == "" {
				email, err = promptLine(a, "Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptPassword(a, "Password: ")
				if err != nil {
					return err
				}
			}

			session, user, err := a.Client.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := saveSession(a, session); err != nil {
				return err
			}

			fmt.Fprintln(a.Stdout, a.Styles.SuccessText.Render("Logged in as "+user.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (or COSOFT_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "account password (or COSOFT_PASSWORD)")
	return cmd
}

func newAuthCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Check authentication status and display the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			session, err := a.Session()
			if err != nil {
				return err
			}
			user, err := a.Client.CheckAuth(cmd.Context(), session)
			if err != nil {
				return fmt.Errorf("authentication check failed: %w", err)
			}
			fmt.Fprintln(a.Stdout, a.Styles.SuccessText.Render("Authenticated as "+user.DisplayName()))
			return nil
		},
	}
}

func saveSession(a *App, session auth.Session) error {
	if err := auth.Save(a.Config.AuthPath, session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	a.session = session
	a.hasSession = true
	return nil
}

func promptLine(a *App, prompt string) (string, error) {
	fmt.Fprint(a.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(a *App, prompt string) (string, error) {
	fmt.Fprint(a.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(a.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	// Piped stdin, e.g. in scripts.
	return promptLine(a, "")
}
