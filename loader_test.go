package wallet_test

import (
	"errors"
	"testing"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/store"
)

func TestSaveLoad(t *testing.T) {
	s := store.NewMemory()
	c := wallet.NewCollection()
	a, _ := c.Add("Groceries", "50", "#00ff00")
	a.AdjustString(wallet.Credit, "20")
	if err := wallet.Save(s, wallet.DefaultKey, c); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	restored := wallet.NewCollection()
	schema, err := wallet.Load(s, wallet.DefaultKey, restored)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if schema != wallet.SchemaNested {
		t.Errorf("Load() schema = %v, want nested", schema)
	}
	if restored.Len() != 1 {
		t.Fatalf("Load() restored %d accounts, want 1", restored.Len())
	}
	got := restored.List()[0]
	if got.Name() != "Groceries" || got.Balance().String() != "70" || got.Income().String() != "20" {
		t.Errorf("Load() restored %v income %s", got, got.Income())
	}

	// each save overwrites the previous snapshot.
	c.Remove(a)
	if err := wallet.Save(s, wallet.DefaultKey, c); err != nil {
		t.Fatal(err)
	}
	if _, err := wallet.Load(s, wallet.DefaultKey, restored); err != nil || restored.Len() != 0 {
		t.Errorf("Load() after overwrite = %d accounts, %v", restored.Len(), err)
	}
}

func TestLoad_EmptySlot(t *testing.T) {
	c := wallet.NewCollection()
	c.Add("Stale", "1", "")
	schema, err := wallet.Load(store.NewMemory(), wallet.DefaultKey, c)
	if err != nil || schema != wallet.SchemaEmpty || c.Len() != 0 {
		t.Errorf("Load() of an empty slot = %v, %v, %d accounts", schema, err, c.Len())
	}
}

func TestLoad_Malformed(t *testing.T) {
	s := store.NewMemory()
	s.SetItem("data", `{"accounts":"not-an-array"}`)
	c := wallet.NewCollection()
	c.Add("Stale", "1", "")
	_, err := wallet.Load(s, "data", c)
	if !errors.Is(err, wallet.ErrMalformedSnapshot) {
		t.Errorf("Load() error = %v, want ErrMalformedSnapshot", err)
	}
	if c.Len() != 0 {
		t.Errorf("Load() kept %d accounts, want an empty collection", c.Len())
	}
}

type brokenStorage struct{ err error }

func (b brokenStorage) GetItem(string) (string, bool, error) { return "", false, b.err }
func (b brokenStorage) SetItem(string, string) error         { return b.err }

func TestLoad_StorageFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	c := wallet.NewCollection()
	c.Add("Kept", "1", "")
	if _, err := wallet.Load(brokenStorage{boom}, "data", c); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
	if c.Len() != 1 {
		t.Error("a storage failure should leave the collection untouched")
	}
	if err := wallet.Save(brokenStorage{boom}, "data", c); !errors.Is(err, boom) {
		t.Errorf("Save() error = %v, want %v", err, boom)
	}
}
