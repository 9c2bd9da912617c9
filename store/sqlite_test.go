package store

import (
	"path/filepath"
	"testing"

	"autoannoy/model"
)

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guilds.db")

	st, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	want := testConfig()
	if err := st.Put("123", want); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reloaded.Close()

	if got := reloaded.Get("123"); !sameConfig(got, want) {
		t.Fatalf("round trip mismatch: want %+v, got %+v", want, got)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("expected 1 guild, got %d", reloaded.Len())
	}
}

func TestSQLitePutUpserts(t *testing.T) {
	st, err := NewSQLite(filepath.Join(t.TempDir(), "guilds.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	defer st.Close()

	if err := st.Put("123", testConfig()); err != nil {
		t.Fatalf("first put: %v", err)
	}

	updated := testConfig()
	updated.Message = "Go away!"
	updated.TargetIDs = append(updated.TargetIDs, 6)
	if err := st.Put("123", updated); err != nil {
		t.Fatalf("second put: %v", err)
	}

	if got := st.Get("123"); !sameConfig(got, updated) {
		t.Fatalf("expected updated config, got %+v", got)
	}
	if st.Len() != 1 {
		t.Fatalf("upsert must not grow the guild count, got %d", st.Len())
	}
}

func TestSQLiteCorruptRowIsDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guilds.db")

	st, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if err := st.Put("123", testConfig()); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, err = st.db.Exec(
		`INSERT OR REPLACE INTO guild_configs (guild_id, admin_ids, target_ids, message) VALUES (?, ?, ?, ?)`,
		"456", "{not json", "[]", "hi",
	)
	if err != nil {
		t.Fatalf("planting corrupt row: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// A corrupt row must not fail startup; it is discarded like a corrupt
	// state file, and intact rows still load.
	reloaded, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("corrupt row must not fail startup: %v", err)
	}
	defer reloaded.Close()

	if got := reloaded.Get("456"); !sameConfig(got, model.GuildConfig{}) {
		t.Fatalf("corrupt guild should read as zero-value, got %+v", got)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("expected only the intact guild, got %d", reloaded.Len())
	}
	if got := reloaded.Get("123"); !sameConfig(got, testConfig()) {
		t.Fatalf("intact guild should survive, got %+v", got)
	}

	// The next flush for that guild replaces the corrupt row.
	if err := reloaded.Put("456", testConfig()); err != nil {
		t.Fatalf("put over corrupt row: %v", err)
	}
}

func TestSQLiteUnknownGuildIsZeroValue(t *testing.T) {
	st, err := NewSQLite(filepath.Join(t.TempDir(), "guilds.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	defer st.Close()

	if got := st.Get("999"); !sameConfig(got, model.GuildConfig{}) {
		t.Fatalf("expected zero-value config, got %+v", got)
	}
}
