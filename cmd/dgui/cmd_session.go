package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scottbass3/dgui/internal/format"
)

func newLoginCmd(c *cli) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			reader := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				if username, err = prompt(cmd, reader, "Username: ", false); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(cmd, reader, "Password: ", true); err != nil {
					return err
				}
			}
			if username == "" || password == "" {
				return errors.New("username and password are required")
			}
			user, err := a.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "User name (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when empty)")
	return cmd
}

// prompt reads one line from the command input. Secrets are read without
// echo when the input is a terminal.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label string, secret bool) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	if file, ok := cmd.InOrStdin().(*os.File); ok && secret && term.IsTerminal(int(file.Fd())) {
		value, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err)
		}
		return string(value), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openApp(cmd)
			if err != nil {
				return err
			}
			a.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			user, err := a.API.CurrentUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("current user: %w", err)
			}
			role := "user"
			if user.IsAdmin {
				role = "admin"
			}
			return renderFields(cmd.OutOrStdout(), [][2]string{
				{"User", user.Username},
				{"Role", role},
				{"Server", a.API.BaseURL()},
				{"Expires", format.Time(a.Session.ExpiresAt())},
			})
		},
	}
}

func newPasswdCmd(c *cli) *cobra.Command {
	var current, next string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.openSession(cmd)
			if err != nil {
				return err
			}
			reader := bufio.NewReader(cmd.InOrStdin())
			if current == "" {
				if current, err = prompt(cmd, reader, "Current password: ", true); err != nil {
					return err
				}
			}
			if next == "" {
				if next, err = prompt(cmd, reader, "New password: ", true); err != nil {
					return err
				}
			}
			if current == "" || next == "" {
				return errors.New("current and new password are required")
			}
			if err := a.API.ChangePassword(cmd.Context(), current, next); err != nil {
				return fmt.Errorf("change password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "Current password (prompted when empty)")
	cmd.Flags().StringVar(&next, "new", "", "New password (prompted when empty)")
	return cmd
}
