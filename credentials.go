package twitter

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "twitter-gofun"

// Credentials are what the login form needs.
type Credentials struct {
	Username   string
	Password   string
	TOTPSecret string
}

// SecretStore keeps per-account secrets outside the config file.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// KeyringStore is a SecretStore backed by the OS keychain.
type KeyringStore struct{}

// Get returns the secret stored under key, or ErrCredentialsNotFound.
func (KeyringStore) Get(key string) (string, error) {
	v, err := keyring.Get(keyringService, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrCredentialsNotFound
		}
		return "", fmt.Errorf("keyring get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key.
func (KeyringStore) Set(key, value string) error {
	if err := keyring.Set(keyringService, key, value); err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key returns ErrCredentialsNotFound.
func (KeyringStore) Delete(key string) error {
	if err := keyring.Delete(keyringService, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}

// PasswordKey and TOTPKey name an account's secrets in a SecretStore.
func PasswordKey(username string) string { return "password/" + username }
func TOTPKey(username string) string     { return "totp/" + username }

// Prompter asks the user for a value. secret input must not be echoed.
type Prompter func(label string, secret bool) (string, error)

// ResolveCredentials completes acc from store and then prompt. Values already
// in acc (from env or .env) win. The TOTP secret is optional and never
// prompted for. A nil store or prompt is skipped.
func ResolveCredentials(acc AccountConfig, store SecretStore, prompt Prompter) (Credentials, error) {
	creds := Credentials{
		Username:   acc.Username,
		Password:   acc.Password,
		TOTPSecret: acc.TOTPSecret,
	}

	if creds.Username == "" && prompt != nil {
		u, err := prompt("Twitter username", false)
		if err != nil {
			return Credentials{}, fmt.Errorf("prompt username: %w", err)
		}
		creds.Username = u
	}
	if creds.Username == "" {
		return Credentials{}, fmt.Errorf("username: %w", ErrCredentialsNotFound)
	}

	if creds.Password == "" && store != nil {
		pw, err := store.Get(PasswordKey(creds.Username))
		if err != nil && !errors.Is(err, ErrCredentialsNotFound) {
			return Credentials{}, err
		}
		creds.Password = pw
	}
	if creds.Password == "" && prompt != nil {
		pw, err := prompt(fmt.Sprintf("Password for %s", creds.Username), true)
		if err != nil {
			return Credentials{}, fmt.Errorf("prompt password: %w", err)
		}
		creds.Password = pw
	}
	if creds.Password == "" {
		return Credentials{}, fmt.Errorf("password for %s: %w", creds.Username, ErrCredentialsNotFound)
	}

	if creds.TOTPSecret == "" && store != nil {
		secret, err := store.Get(TOTPKey(creds.Username))
		if err != nil && !errors.Is(err, ErrCredentialsNotFound) {
			return Credentials{}, err
		}
		creds.TOTPSecret = secret
	}
	return creds, nil
}
