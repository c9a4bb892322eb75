// Package credentials keeps the Kapso API key in the operating system
// keyring so it does not have to live in the config file.
package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service the key is filed under.
	Service = "kapso-mcp"
	// Account names the keyring entry holding the API key.
	Account = "KAPSO_API_KEY"
)

// ErrNotFound means the keyring holds no API key.
var ErrNotFound = errors.New("no API key in keyring")

// APIKey returns the stored key.
func APIKey() (string, error) {
	key, err := keyring.Get(Service, Account)
	if err != nil {
		return "", keyringErr("read API key", err)
	}
	return key, nil
}

// SetAPIKey stores key with surrounding whitespace removed. An empty key is
// rejected.
func SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	return keyringErr("store API key", keyring.Set(Service, Account, key))
}

// DeleteAPIKey removes the stored key, or returns ErrNotFound.
func DeleteAPIKey() error {
	return keyringErr("delete API key", keyring.Delete(Service, Account))
}

// ResolveAPIKey picks the key a command runs with: configured (from the
// environment or the config file) when set, else the keyring entry.
func ResolveAPIKey(configured string) (string, error) {
	if key := strings.TrimSpace(configured); key != "" {
		return key, nil
	}
	key, err := APIKey()
	if errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("set KAPSO_API_KEY, kapso.api_key or run `kapso-mcp auth login`: %w", err)
	}
	return key, err
}

func keyringErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
