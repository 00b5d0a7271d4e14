package store

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const service = "chaterp-app-sheets"

// KeyringStore keeps the mapping in the OS credential store, falling back to the encrypted
// file backend in dir where no OS keychain is available.
type KeyringStore struct {
	ring keyring.Keyring
}

func NewKeyringStore(dir, password string) (*KeyringStore, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create keyring directory (%w)", err)
		}
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:              service,
		KeychainTrustApplication: runtime.GOOS == "darwin",
		FileDir:                  dir,
		FilePasswordFunc:         passwordFunc(password, term.IsTerminal(int(os.Stdin.Fd()))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring (%w)", err)
	}

	return &KeyringStore{ring: ring}, nil
}

func (k *KeyringStore) Get(key string) (string, bool, error) {
	item, err := k.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("failed to read '%s' from keyring (%w)", key, err)
	}

	return string(item.Data), true, nil
}

func (k *KeyringStore) Set(key, value string) error {
	if err := k.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "ChatERP spreadsheet",
	}); err != nil {
		return fmt.Errorf("failed to store '%s' in keyring (%w)", key, err)
	}

	return nil
}

func (k *KeyringStore) Close() error {
	return nil
}

func passwordFunc(password string, tty bool) keyring.PromptFunc {
	if password != "" {
		return keyring.FixedStringPrompt(password)
	}

	if tty {
		return keyring.TerminalPrompt
	}

	return func(string) (string, error) {
		return "", fmt.Errorf("no terminal available for keyring password prompt; set CHATERP_KEYRING_PASSWORD")
	}
}
