package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/planme/internal/constants"
)

var (
	// ErrNotFound is returned when no credential is stored for the provider
	ErrNotFound = errors.New("credential not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetAPIKey retrieves the LLM API key for the given provider from the OS keyring.
// Returns ErrNotFound if no key is stored.
func GetAPIKey(provider string) (string, error) {
	key, err := keyring.Get(constants.AppName, provider)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

// SetAPIKey stores the LLM API key for the given provider in the OS keyring.
func SetAPIKey(provider, key string) error {
	if provider == "" {
		return errors.New("provider cannot be empty")
	}
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.Set(constants.AppName, provider, key); err != nil {
		return fmt.Errorf("failed to store credential in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the provider's API key from the OS keyring.
func DeleteAPIKey(provider string) error {
	err := keyring.Delete(constants.AppName, provider)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credential from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
