package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "whopstarter"

// APIKeyName is the keyring entry holding the Whop API key.
const APIKeyName = "whop_api_key"

// Vault reads and writes credentials in a keyring.
type Vault struct {
	ring keyring.Keyring
}

// NewVault wraps an already opened keyring.
func NewVault(ring keyring.Keyring) *Vault {
	return &Vault{ring: ring}
}

// Open returns a Vault over the system keyring, falling back to an
// encrypted file backend where no OS keyring is available.
func Open() (*Vault, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/whopstarter/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("whopstarter-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewVault(ring), nil
}

// Get retrieves a credential value by key.
func (v *Vault) Get(key string) (string, error) {
	item, err := v.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a credential value by key.
func (v *Vault) Set(key string, value string) error {
	err := v.ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(value),
		Label:       serviceName + " " + key,
		Description: "whopstarter credential",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key.
func (v *Vault) Delete(key string) error {
	if err := v.ring.Remove(key); err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// IsNotFound reports whether err means the credential does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound)
}

// ResolveAPIKey returns configured when non-empty, otherwise the key stored
// in the vault. A missing keyring entry yields an empty key and no error.
func ResolveAPIKey(v *Vault, configured string) (string, error) {
	if configured != "" || v == nil {
		return configured, nil
	}
	key, err := v.Get(APIKeyName)
	if IsNotFound(err) {
		return "", nil
	}
	return key, err
}
