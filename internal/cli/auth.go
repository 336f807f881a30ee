package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to the Helpdesk AI service",
	Long: `Sign in with your email. The password is prompted without echo.

On success the token and identity are stored locally; subsequent commands
use them until you log out.

Examples:
  helpdesk login ann@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Create an account",
	Long: `Create an account and sign in. The password is prompted without echo.

Examples:
  helpdesk register "Ann Smith" ann@example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := sess.Login(context.Background(), client, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, email := args[0], args[1]

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := sess.Register(context.Background(), client, name, email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	fmt.Printf("Account created. Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	sess.Logout()
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user := sess.CurrentUser()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s> (id %d)\n", user.Name, user.Email, user.ID)

	if verbose {
		resp, err := client.ValidateToken(context.Background())
		if err != nil {
			return fmt.Errorf("validate token: %w", err)
		}
		fmt.Printf("Token valid: %v\n", resp.Valid)
	}
	return nil
}

// promptPassword reads a password from the terminal without echo, falling
// back to a plain line read when stdin is not a terminal (pipes, tests).
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
