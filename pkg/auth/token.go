// Package auth stores the optional headlines API token in the OS keyring.
package auth

import (
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	service = "adictl"
	user    = "headlines-api-token"
)

// SaveToken stores the API token in the OS keyring.
func SaveToken(token string) error {
	if token == "" {
		return errors.New("token required")
	}
	if err := keyring.Set(service, user, token); err != nil {
		return errors.Wrap(err, "failed to save token in keyring")
	}
	return nil
}

// GetToken returns the stored API token, or empty when none is set.
func GetToken() (string, error) {
	token, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read token from keyring")
	}
	return token, nil
}

// DeleteToken removes the stored API token. Deleting a missing token is
// not an error.
func DeleteToken() error {
	err := keyring.Delete(service, user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.Wrap(err, "failed to delete token from keyring")
	}
	return nil
}
