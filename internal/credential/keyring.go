// Package credential remembers the signed-in user between launches via
// the system keyring. Sign-in itself is simulated; only the email is
// stored, never a password.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "pastel"

// rememberedUserKey is where the signed-in email lives in the keyring.
const rememberedUserKey = "remembered-user"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/pastel/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("pastel-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// RememberedUser returns the stored email, or "" when none is stored.
func RememberedUser() string {
	ring, err := openKeyring()
	if err != nil {
		return ""
	}
	item, err := ring.Get(rememberedUserKey)
	if err != nil {
		return ""
	}
	return string(item.Data)
}

// RememberUser stores the signed-in email for the next launch.
func RememberUser(email string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}
	err = ring.Set(keyring.Item{
		Key:  rememberedUserKey,
		Data: []byte(email),
	})
	if err != nil {
		return fmt.Errorf("remembering user: %w", err)
	}
	return nil
}

// ForgetUser removes the stored email, if any.
func ForgetUser() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}
	if err := ring.Remove(rememberedUserKey); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("forgetting user: %w", err)
	}
	return nil
}
