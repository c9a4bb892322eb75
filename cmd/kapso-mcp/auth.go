package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/credentials"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Kapso API key",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API key in the system keyring",
	Long:  "Reads the API key from --key or stdin, checks it against Kapso and stores it in the system keyring.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		key, _ := cmd.Flags().GetString("key")
		if key == "" {
			if key, err = readSecret(cmd, "Kapso API key: "); err != nil {
				return err
			}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("API key cannot be empty")
		}

		if skip, _ := cmd.Flags().GetBool("no-verify"); !skip {
			if err := a.clientWithKey(key).TestCredentials(cmd.Context()); err != nil {
				return err
			}
		}
		if err := credentials.SetAPIKey(key); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key stored")
		return nil
	},
}

// readSecret reads without echo from a terminal, or one line from piped input.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read API key: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read API key: %w", err)
	}
	return line, nil
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the API key from the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := credentials.DeleteAPIKey()
		if errors.Is(err, credentials.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "no API key stored")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key removed")
		return nil
	},
}

var authTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Check the configured API key against Kapso",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.client()
		if err != nil {
			return err
		}
		if err := client.TestCredentials(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "credentials: ok")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("key", "", "API key (prompted for when omitted)")
	authLoginCmd.Flags().Bool("no-verify", false, "store the key without checking it")
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authTestCmd)
	rootCmd.AddCommand(authCmd)
}
