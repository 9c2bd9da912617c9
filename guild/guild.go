// Package guild implements the per-guild management operations and the
// auto-reply decision. It is transport-agnostic: the Discord layer parses
// events and renders the outcomes.
package guild

import (
	"errors"

	"autoannoy/model"
)

var (
	ErrUnauthorized      = errors.New("actor is not an admin of this guild")
	ErrAlreadyAdmin      = errors.New("user is already an admin")
	ErrNotAdmin          = errors.New("user is not an admin")
	ErrCannotRemoveOwner = errors.New("the guild owner cannot be removed from the admin list")
	ErrAlreadyTarget     = errors.New("user is already a target")
	ErrNotTarget         = errors.New("user is not a target")
)

// EffectiveAdmins returns the owner plus the stored admin list, owner first,
// without duplicates. The owner is an admin regardless of the stored list.
func EffectiveAdmins(cfg model.GuildConfig, ownerID int64) []int64 {
	admins := []int64{ownerID}
	for _, id := range cfg.AdminIDs {
		if id != ownerID {
			admins = append(admins, id)
		}
	}
	return admins
}

// IsAdmin reports whether userID is in the effective admin set.
func IsAdmin(cfg model.GuildConfig, ownerID, userID int64) bool {
	return userID == ownerID || contains(cfg.AdminIDs, userID)
}

// Authorize gates mutating operations on admin membership.
func Authorize(cfg model.GuildConfig, ownerID, actorID int64) error {
	if !IsAdmin(cfg, ownerID, actorID) {
		return ErrUnauthorized
	}
	return nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
