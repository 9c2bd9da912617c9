package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"autoannoy/model"
)

// File persists the whole guild mapping as one indented JSON document,
// rewritten on every Put. A missing file is an empty mapping; a corrupt file
// is logged, treated as empty, and overwritten by the next flush.
type File struct {
	path   string
	mu     sync.RWMutex
	guilds map[string]model.GuildConfig
}

// NewFile loads the state file at path. Construction only fails on an
// unreadable (not merely absent or malformed) file.
func NewFile(path string) (*File, error) {
	f := &File{
		path:   path,
		guilds: make(map[string]model.GuildConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("State file %s does not exist, starting with empty state", path)
			return f, nil
		}
		return nil, fmt.Errorf("%w: reading state file %s: %v", ErrStorage, path, err)
	}

	if err := json.Unmarshal(data, &f.guilds); err != nil {
		log.Printf("State file %s is corrupt, starting with empty state: %v", path, err)
		f.guilds = make(map[string]model.GuildConfig)
	}
	return f, nil
}

func (f *File) Get(guildID string) model.GuildConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.guilds[guildID].Clone()
}

func (f *File) Put(guildID string, cfg model.GuildConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// The in-memory value is updated even if the flush below fails, so the
	// process keeps serving the acknowledged state.
	f.guilds[guildID] = cfg.Clone()
	return f.flush()
}

func (f *File) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.guilds)
}

// flush writes the whole mapping to disk. Callers must hold the write lock.
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.guilds, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshalling state: %v", ErrStorage, err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating state directory %s: %v", ErrStorage, dir, err)
		}
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing state file %s: %v", ErrStorage, f.path, err)
	}
	return nil
}
