// Package store implements wallet.Storage, the string-keyed slots a
// collection snapshot is saved to.
//
// Memory is meant for tests and short lived sessions. Dir keeps one human
// readable JSON file per key in a folder, which makes the data easy to back
// up or to keep under version control.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/wallet"
)

// ErrInvalidKey is returned for keys that cannot name a slot.
var ErrInvalidKey = errors.New("invalid storage key")

// checkKey rejects keys that are empty or would escape a folder.
func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Slots is a wallet.Storage whose keys can be listed and removed.
type Slots interface {
	wallet.Storage
	RemoveItem(key string) error
	Keys() ([]string, error)
}

var (
	_ Slots = (*Memory)(nil)
	_ Slots = (*Dir)(nil)
)

// BackupSuffix is appended to a key to name its backups.
const BackupSuffix = ".bak"

// Backup copies the content of the slot key to a free "<key>.bak" slot
// ("<key>.bak2", "<key>.bak3" and so on once taken) and returns the backup key.
// An existing backup already holding the same content is reused. A missing
// slot has nothing to back up and returns an empty key.
func Backup(s Slots, key string) (string, error) {
	content, ok, err := s.GetItem(key)
	if err != nil || !ok {
		return "", err
	}
	keys, err := s.Keys()
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(keys))
	for _, k := range keys {
		taken[k] = true
	}
	for n := 1; ; n++ {
		backup := key + BackupSuffix
		if n > 1 {
			backup += strconv.Itoa(n)
		}
		if !taken[backup] {
			if err := s.SetItem(backup, content); err != nil {
				return "", fmt.Errorf("cannot back up slot %q: %w", key, err)
			}
			return backup, nil
		}
		if prev, _, err := s.GetItem(backup); err == nil && prev == content {
			return backup, nil
		}
	}
}
