package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	twitter "github.com/RavensCloud/twitter-gofun"
)

var withTOTP bool

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage account secrets in the OS keyring",
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set <account>",
	Short: "Store the password (and optionally a TOTP secret) for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCredentials(twitter.KeyringStore{}, terminalPrompt, args[0], withTOTP)
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:   "delete <account>",
	Short: "Remove an account's stored secrets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteCredentials(twitter.KeyringStore{}, args[0])
	},
}

func init() {
	credentialsSetCmd.Flags().BoolVar(&withTOTP, "totp", false, "also store a TOTP secret for two-factor login")
	credentialsCmd.AddCommand(credentialsSetCmd, credentialsDeleteCmd)
	rootCmd.AddCommand(credentialsCmd)
}

func setCredentials(store twitter.SecretStore, prompt twitter.Prompter, account string, totp bool) error {
	pw, err := prompt(fmt.Sprintf("Password for %s", account), true)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if pw == "" {
		return fmt.Errorf("empty password for %s", account)
	}
	if err := store.Set(twitter.PasswordKey(account), pw); err != nil {
		return err
	}

	if totp {
		secret, err := prompt(fmt.Sprintf("TOTP secret for %s", account), true)
		if err != nil {
			return fmt.Errorf("read TOTP secret: %w", err)
		}
		if secret != "" {
			if err := store.Set(twitter.TOTPKey(account), secret); err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteCredentials removes both secrets. A secret that was never stored is
// not an error.
func deleteCredentials(store twitter.SecretStore, account string) error {
	for _, key := range []string{twitter.PasswordKey(account), twitter.TOTPKey(account)} {
		if err := store.Delete(key); err != nil && !errors.Is(err, twitter.ErrCredentialsNotFound) {
			return err
		}
	}
	return nil
}
