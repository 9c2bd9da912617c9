package model

// GuildConfig holds the per-guild bot configuration. The guild owner is not
// stored here; ownership is supplied by the gateway at evaluation time.
type GuildConfig struct {
	AdminIDs  []int64 `json:"adminIDs" db:"admin_ids"`
	TargetIDs []int64 `json:"targetIDs" db:"target_ids"`
	Message   string  `json:"message" db:"message"`
}

// Clone returns a deep copy so callers can mutate freely without racing
// readers of the stored value.
func (c GuildConfig) Clone() GuildConfig {
	out := GuildConfig{Message: c.Message}
	if c.AdminIDs != nil {
		out.AdminIDs = append([]int64(nil), c.AdminIDs...)
	}
	if c.TargetIDs != nil {
		out.TargetIDs = append([]int64(nil), c.TargetIDs...)
	}
	return out
}

// GuildSnapshot is the read-only view rendered by the info command. AdminIDs
// here is the effective admin set, owner included.
type GuildSnapshot struct {
	AdminIDs  []int64
	TargetIDs []int64
	Message   string
}
