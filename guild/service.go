package guild

import (
	"sync"
	"time"

	"autoannoy/model"
	"autoannoy/store"
)

// RemoveOutcome reports how an admin-removal request resolved.
type RemoveOutcome int

const (
	// OutcomeRemoved means the user was removed from the admin list.
	OutcomeRemoved RemoveOutcome = iota
	// OutcomeConfirmationRequired means a self-demotion needs a repeat of
	// the same command within the confirmation window; nothing was changed.
	OutcomeConfirmationRequired
)

// Service applies the management operations against the store. Mutations on
// the same guild are serialized by a per-guild mutex so the
// read-modify-persist sequence never loses an update; different guilds never
// contend.
type Service struct {
	store   store.Store
	confirm *ConfirmationTracker

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds a Service on top of the given store. now feeds the
// confirmation tracker; pass time.Now in production.
func NewService(st store.Store, confirmWindow time.Duration, now func() time.Time) *Service {
	return &Service{
		store:   st,
		confirm: NewConfirmationTracker(confirmWindow, now),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Confirmations exposes the tracker for the periodic sweep.
func (s *Service) Confirmations() *ConfirmationTracker {
	return s.confirm
}

// guildLock returns the mutex for a guild, creating it on first use. Locks
// live for the process lifetime; the guild count bounds the map.
func (s *Service) guildLock(guildID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[guildID] = lock
	}
	return lock
}

// AdminAdd grants userID admin rights in the guild.
func (s *Service) AdminAdd(guildID string, ownerID, actorID, userID int64) error {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	cfg := s.store.Get(guildID)
	if err := Authorize(cfg, ownerID, actorID); err != nil {
		return err
	}
	if IsAdmin(cfg, ownerID, userID) {
		return ErrAlreadyAdmin
	}

	cfg.AdminIDs = append(cfg.AdminIDs, userID)
	return s.store.Put(guildID, cfg)
}

// AdminRemove revokes userID's admin rights. A self-removal needs a second
// identical call within the confirmation window before anything changes.
func (s *Service) AdminRemove(guildID string, ownerID, actorID, userID int64) (RemoveOutcome, error) {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	cfg := s.store.Get(guildID)
	if err := Authorize(cfg, ownerID, actorID); err != nil {
		return OutcomeRemoved, err
	}
	if userID == ownerID {
		return OutcomeRemoved, ErrCannotRemoveOwner
	}
	if !contains(cfg.AdminIDs, userID) {
		return OutcomeRemoved, ErrNotAdmin
	}

	if userID == actorID && !s.confirm.RequestOrConsume(guildID, actorID) {
		return OutcomeConfirmationRequired, nil
	}

	cfg.AdminIDs = remove(cfg.AdminIDs, userID)
	return OutcomeRemoved, s.store.Put(guildID, cfg)
}

// TargetAdd puts userID on the auto-reply target list.
func (s *Service) TargetAdd(guildID string, ownerID, actorID, userID int64) error {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	cfg := s.store.Get(guildID)
	if err := Authorize(cfg, ownerID, actorID); err != nil {
		return err
	}
	if contains(cfg.TargetIDs, userID) {
		return ErrAlreadyTarget
	}

	cfg.TargetIDs = append(cfg.TargetIDs, userID)
	return s.store.Put(guildID, cfg)
}

// TargetRemove takes userID off the target list.
func (s *Service) TargetRemove(guildID string, ownerID, actorID, userID int64) error {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	cfg := s.store.Get(guildID)
	if err := Authorize(cfg, ownerID, actorID); err != nil {
		return err
	}
	if !contains(cfg.TargetIDs, userID) {
		return ErrNotTarget
	}

	cfg.TargetIDs = remove(cfg.TargetIDs, userID)
	return s.store.Put(guildID, cfg)
}

// SetMessage replaces the auto-reply text. An empty string disables replies.
func (s *Service) SetMessage(guildID string, ownerID, actorID int64, text string) error {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	cfg := s.store.Get(guildID)
	if err := Authorize(cfg, ownerID, actorID); err != nil {
		return err
	}

	cfg.Message = text
	return s.store.Put(guildID, cfg)
}

// Info returns the world-readable configuration snapshot. No authorization
// and no guild lock: the store hands out consistent copies.
func (s *Service) Info(guildID string, ownerID int64) model.GuildSnapshot {
	cfg := s.store.Get(guildID)
	return model.GuildSnapshot{
		AdminIDs:  EffectiveAdmins(cfg, ownerID),
		TargetIDs: cfg.TargetIDs,
		Message:   cfg.Message,
	}
}

// ReplyFor decides whether a message from authorID should be answered and
// with what. The bot never replies to itself, to non-targets, or when no
// message is configured. Pure read, no state change.
func (s *Service) ReplyFor(guildID string, authorID, botID int64) (string, bool) {
	if authorID == botID {
		return "", false
	}
	cfg := s.store.Get(guildID)
	if !contains(cfg.TargetIDs, authorID) {
		return "", false
	}
	if cfg.Message == "" {
		return "", false
	}
	return cfg.Message, true
}
