package store

import (
	"os"
	"path/filepath"
	"testing"

	"autoannoy/model"
)

func testConfig() model.GuildConfig {
	return model.GuildConfig{
		AdminIDs:  []int64{100, 1},
		TargetIDs: []int64{5},
		Message:   "Stop!",
	}
}

func sameConfig(a, b model.GuildConfig) bool {
	if a.Message != b.Message || len(a.AdminIDs) != len(b.AdminIDs) || len(a.TargetIDs) != len(b.TargetIDs) {
		return false
	}
	for i := range a.AdminIDs {
		if a.AdminIDs[i] != b.AdminIDs[i] {
			return false
		}
	}
	for i := range a.TargetIDs {
		if a.TargetIDs[i] != b.TargetIDs[i] {
			return false
		}
	}
	return true
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := NewFile(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	want := testConfig()
	if err := st.Put("123", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	// A fresh store over the same file sees the identical config.
	reloaded, err := NewFile(path)
	if err != nil {
		t.Fatalf("reloading store: %v", err)
	}
	if got := reloaded.Get("123"); !sameConfig(got, want) {
		t.Fatalf("round trip mismatch: want %+v, got %+v", want, got)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("expected 1 guild, got %d", reloaded.Len())
	}
}

func TestFileMissingIsEmpty(t *testing.T) {
	st, err := NewFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expected empty mapping, got %d guilds", st.Len())
	}
	if got := st.Get("123"); !sameConfig(got, model.GuildConfig{}) {
		t.Fatalf("expected zero-value config, got %+v", got)
	}
}

func TestFileGetDoesNotCreateDurableState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st, err := NewFile(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	st.Get("123")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("a read alone must not write the state file")
	}
}

func TestFileCorruptIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	st, err := NewFile(path)
	if err != nil {
		t.Fatalf("corrupt file must not fail startup: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expected empty mapping after corruption, got %d guilds", st.Len())
	}

	// The next flush replaces the corrupt content.
	if err := st.Put("123", testConfig()); err != nil {
		t.Fatalf("put after corruption: %v", err)
	}
	reloaded, err := NewFile(path)
	if err != nil {
		t.Fatalf("reloading store: %v", err)
	}
	if !sameConfig(reloaded.Get("123"), testConfig()) {
		t.Fatal("flush after corruption should leave a readable file")
	}
}

func TestFileGetReturnsCopy(t *testing.T) {
	st, err := NewFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if err := st.Put("123", testConfig()); err != nil {
		t.Fatalf("put: %v", err)
	}

	got := st.Get("123")
	got.AdminIDs[0] = 999
	got.Message = "mutated"

	if !sameConfig(st.Get("123"), testConfig()) {
		t.Fatal("mutating a returned config must not affect the store")
	}
}
