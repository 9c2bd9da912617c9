// Package store persists per-guild configuration. Every implementation keeps
// an authoritative in-memory map in front of the durable medium: Get never
// fails and returns a copy, Put updates memory first and then flushes, so a
// failed flush leaves the process consistent while the caller is told
// durability is uncertain.
package store

import (
	"errors"

	"autoannoy/model"
)

// ErrStorage marks durable read/write failures. Callers match it with
// errors.Is to distinguish persistence trouble from domain errors.
var ErrStorage = errors.New("storage error")

// Store is the durable guild-config mapping.
type Store interface {
	// Get returns the config for a guild, or a zero-value config if the
	// guild has never been seen. Reads never create durable state.
	Get(guildID string) model.GuildConfig
	// Put stores the config and flushes it durably before returning.
	Put(guildID string, cfg model.GuildConfig) error
	// Len reports how many guilds have stored configuration.
	Len() int
}
