// Package credential handles database password storage in the OS keyring.
package credential

import (
	"github.com/zalando/go-keyring"
)

const keyringService = "collectdesk"

// Service handles password storage in the OS keyring.
type Service struct{}

// NewService creates a new credential service.
func NewService() *Service {
	return &Service{}
}

// SetDatabasePassword stores the password for a user@host pair in the OS keyring.
func (s *Service) SetDatabasePassword(account, password string) error {
	if password == "" {
		// Delete any existing password
		_ = keyring.Delete(keyringService, account)
		return nil
	}
	return keyring.Set(keyringService, account, password)
}

// GetDatabasePassword retrieves the password for a user@host pair from the OS
// keyring. A missing entry is not an error; the caller falls back to the
// config file value.
func (s *Service) GetDatabasePassword(account string) (string, error) {
	password, err := keyring.Get(keyringService, account)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	return password, err
}

// DeleteDatabasePassword removes a stored password from the OS keyring.
func (s *Service) DeleteDatabasePassword(account string) error {
	err := keyring.Delete(keyringService, account)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
