package wallet

import (
	"fmt"
)

// DefaultKey is the storage slot used when none is configured.
const DefaultKey = "data"

// Storage is a string-keyed slot store, such as a browser local storage.
type Storage interface {
	// GetItem returns the value stored under key. ok is false if there is none.
	GetItem(key string) (value string, ok bool, err error)
	// SetItem overwrites the value stored under key.
	SetItem(key, value string) error
}

// Save writes the whole collection to the storage slot, replacing the
// previous snapshot.
func Save(s Storage, key string, c *Collection) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := s.SetItem(key, string(data)); err != nil {
		return fmt.Errorf("could not save snapshot %q: %w", key, err)
	}
	return nil
}

// Load restores the collection from the storage slot.
//
// An empty slot restores an empty collection. A malformed snapshot restores
// whatever entries could be read, nothing if the document itself is not
// recognized, and the error wraps ErrMalformedSnapshot: it is for the caller
// to tell the user, it is never fatal. Only a storage failure leaves the
// collection untouched.
func Load(s Storage, key string, c *Collection) (Schema, error) {
	value, ok, err := s.GetItem(key)
	if err != nil {
		return SchemaEmpty, fmt.Errorf("could not read snapshot %q: %w", key, err)
	}
	if !ok {
		c.Restore(Snapshot{})
		return SchemaEmpty, nil
	}
	return c.Unmarshal([]byte(value))
}
