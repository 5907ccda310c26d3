package store

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func testStore(t *testing.T, s Slots) {
	t.Helper()
	if _, ok, err := s.GetItem("data"); ok || err != nil {
		t.Errorf("GetItem() on an empty store = %v, %v", ok, err)
	}
	if err := s.SetItem("data", `{"accounts":[]}`); err != nil {
		t.Fatalf("SetItem() unexpected error: %v", err)
	}
	if err := s.SetItem("data", `{"accounts":[1]}`); err != nil {
		t.Fatalf("SetItem() overwrite unexpected error: %v", err)
	}
	s.SetItem("backup", "x")
	v, ok, err := s.GetItem("data")
	if err != nil || !ok || v != `{"accounts":[1]}` {
		t.Errorf("GetItem() = %q, %v, %v", v, ok, err)
	}
	keys, err := s.Keys()
	if err != nil || !slices.Equal(keys, []string{"backup", "data"}) {
		t.Errorf("Keys() = %v, %v", keys, err)
	}
	if err := s.RemoveItem("backup"); err != nil {
		t.Errorf("RemoveItem() unexpected error: %v", err)
	}
	if err := s.RemoveItem("backup"); err != nil {
		t.Errorf("RemoveItem() twice unexpected error: %v", err)
	}
	if _, ok, _ := s.GetItem("backup"); ok {
		t.Error("removed key is still there")
	}
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		if err := s.SetItem(key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("SetItem(%q) error = %v, want ErrInvalidKey", key, err)
		}
		if err := s.RemoveItem(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("RemoveItem(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "wallet")
	d := NewDir(root)
	testStore(t, d)

	content, err := os.ReadFile(filepath.Join(root, "data.json"))
	if err != nil {
		t.Fatalf("slot file not written: %v", err)
	}
	if string(content) != `{"accounts":[1]}` {
		t.Errorf("slot file = %q", content)
	}
	entries, _ := os.ReadDir(root)
	for _, e := range entries {
		if e.Name() != "data.json" {
			t.Errorf("unexpected file left in the store: %s", e.Name())
		}
	}
}

func TestDir_KeysOfMissingFolder(t *testing.T) {
	keys, err := NewDir(filepath.Join(t.TempDir(), "nope")).Keys()
	if err != nil || len(keys) != 0 {
		t.Errorf("Keys() = %v, %v", keys, err)
	}
}

func TestBackup(t *testing.T) {
	for name, s := range map[string]Slots{
		"memory": NewMemory(),
		"dir":    NewDir(filepath.Join(t.TempDir(), "wallet")),
	} {
		t.Run(name, func(t *testing.T) {
			if key, err := Backup(s, "data"); key != "" || err != nil {
				t.Errorf("Backup() of a missing slot = %q, %v", key, err)
			}
			s.SetItem("data", "v1")
			if key, err := Backup(s, "data"); key != "data.bak" || err != nil {
				t.Errorf("Backup() = %q, %v, want data.bak", key, err)
			}
			// same content, same backup.
			if key, err := Backup(s, "data"); key != "data.bak" || err != nil {
				t.Errorf("Backup() again = %q, %v, want data.bak", key, err)
			}
			s.SetItem("data", "v2")
			if key, err := Backup(s, "data"); key != "data.bak2" || err != nil {
				t.Errorf("Backup() of new content = %q, %v, want data.bak2", key, err)
			}
			keys, _ := s.Keys()
			if !slices.Equal(keys, []string{"data", "data.bak", "data.bak2"}) {
				t.Errorf("Keys() = %v", keys)
			}
			if v, _, _ := s.GetItem("data.bak"); v != "v1" {
				t.Errorf("data.bak = %q, want v1", v)
			}
		})
	}
}
