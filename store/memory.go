package store

import (
	"sync"

	"autoannoy/model"
)

// Memory is a Store with no durable medium. It backs tests and the
// STATE_BACKEND=memory mode.
type Memory struct {
	mu     sync.RWMutex
	guilds map[string]model.GuildConfig
}

func NewMemory() *Memory {
	return &Memory{guilds: make(map[string]model.GuildConfig)}
}

func (m *Memory) Get(guildID string) model.GuildConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.guilds[guildID].Clone()
}

func (m *Memory) Put(guildID string, cfg model.GuildConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guilds[guildID] = cfg.Clone()
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.guilds)
}
