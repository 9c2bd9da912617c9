package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"autoannoy/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const createGuildConfigsSQL = `CREATE TABLE IF NOT EXISTS guild_configs (
	"guild_id" TEXT NOT NULL PRIMARY KEY,
	"admin_ids" TEXT NOT NULL,
	"target_ids" TEXT NOT NULL,
	"message" TEXT NOT NULL
);`

type guildConfigRow struct {
	GuildID   string `db:"guild_id"`
	AdminIDs  string `db:"admin_ids"`
	TargetIDs string `db:"target_ids"`
	Message   string `db:"message"`
}

// SQLite stores one row per guild, with the ID lists as JSON arrays in text
// columns. Rows are loaded into memory once at construction; Put upserts.
type SQLite struct {
	db     *sqlx.DB
	mu     sync.RWMutex
	guilds map[string]model.GuildConfig
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening guild database %s: %v", ErrStorage, path, err)
	}
	if _, err := db.Exec(createGuildConfigsSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating guild_configs table: %v", ErrStorage, err)
	}

	s := &SQLite{db: db, guilds: make(map[string]model.GuildConfig)}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// loadAll reads every stored row into memory. A row with malformed ID lists
// is logged and discarded, same as a corrupt state file: startup never fails
// on bad persisted data, and the next Put for that guild overwrites the row.
func (s *SQLite) loadAll() error {
	var rows []guildConfigRow
	if err := s.db.Select(&rows, "SELECT guild_id, admin_ids, target_ids, message FROM guild_configs"); err != nil {
		return fmt.Errorf("%w: loading guild configs: %v", ErrStorage, err)
	}
	for _, row := range rows {
		cfg := model.GuildConfig{Message: row.Message}
		if err := json.Unmarshal([]byte(row.AdminIDs), &cfg.AdminIDs); err != nil {
			log.Printf("Guild %s has malformed admin_ids, discarding stored row: %v", row.GuildID, err)
			continue
		}
		if err := json.Unmarshal([]byte(row.TargetIDs), &cfg.TargetIDs); err != nil {
			log.Printf("Guild %s has malformed target_ids, discarding stored row: %v", row.GuildID, err)
			continue
		}
		s.guilds[row.GuildID] = cfg
	}
	return nil
}

func (s *SQLite) Get(guildID string) model.GuildConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guilds[guildID].Clone()
}

func (s *SQLite) Put(guildID string, cfg model.GuildConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Memory is updated even when the upsert fails; the caller reports the
	// durability risk to the actor.
	s.guilds[guildID] = cfg.Clone()

	adminIDs, err := json.Marshal(cfg.AdminIDs)
	if err != nil {
		return fmt.Errorf("%w: marshalling admin IDs: %v", ErrStorage, err)
	}
	targetIDs, err := json.Marshal(cfg.TargetIDs)
	if err != nil {
		return fmt.Errorf("%w: marshalling target IDs: %v", ErrStorage, err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO guild_configs (guild_id, admin_ids, target_ids, message) VALUES (?, ?, ?, ?)`,
		guildID, string(adminIDs), string(targetIDs), cfg.Message,
	)
	if err != nil {
		return fmt.Errorf("%w: writing guild %s: %v", ErrStorage, guildID, err)
	}
	return nil
}

func (s *SQLite) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.guilds)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
