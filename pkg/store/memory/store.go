// Package memory implements store.Store with plain in-memory
// collections guarded by one RWMutex. All domain invariants live here;
// an optional Persister snapshots whole collections after every
// mutation and restores them at startup.
package memory

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

// Snapshot keys, one per collection.
const (
	keyUsers   = "users"
	keyPosts   = "posts"
	keyChats   = "chats"
	keyReports = "reports"
	keyAudit   = "audit"
)

// Options configures a Store. Persister and Logger may be nil; Seed is
// applied only when the persister has no users snapshot (or when there
// is no persister at all).
type Options struct {
	Persister store.Persister
	Seed      store.SeedData
	Logger    *zap.Logger
}

// Store keeps every collection in memory. Posts are held
// most-recent-first; users, chats, reports, and audit entries in
// insertion order.
type Store struct {
	mu sync.RWMutex

	users   []*models.User
	posts   []*models.Post
	chats   []*models.Chat
	reports []*models.Report
	audit   []*models.AuditEntry

	persister store.Persister
	log       *zap.Logger
	now       func() time.Time
}

var _ store.Store = (*Store)(nil)

// New builds a store, restoring snapshots when a persister is given and
// seeding otherwise.
func New(opts Options) (*Store, error) {
	s := &Store{
		persister: opts.Persister,
		log:       opts.Logger,
		now:       time.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	if s.persister != nil {
		found, err := s.persister.Load(keyUsers, &s.users)
		if err != nil {
			return nil, err
		}
		if found {
			if _, err := s.persister.Load(keyPosts, &s.posts); err != nil {
				return nil, err
			}
			if _, err := s.persister.Load(keyChats, &s.chats); err != nil {
				return nil, err
			}
			if _, err := s.persister.Load(keyReports, &s.reports); err != nil {
				return nil, err
			}
			if _, err := s.persister.Load(keyAudit, &s.audit); err != nil {
				return nil, err
			}
			return s, nil
		}
	}

	s.applySeed(opts.Seed)
	s.saveAll()
	return s, nil
}

func (s *Store) applySeed(seed store.SeedData) {
	for _, u := range seed.Users {
		s.users = append(s.users, u.Clone())
	}
	for _, p := range seed.Posts {
		s.posts = append(s.posts, p.Clone())
	}
	for _, c := range seed.Chats {
		s.chats = append(s.chats, c.Clone())
	}
}

/* ============================ Persistence =============================== */

// save writes one collection snapshot. Best effort: a failed write
// leaves the in-memory state authoritative and is only logged.
func (s *Store) save(key string, v any) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(key, v); err != nil {
		s.log.Warn("snapshot save failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) saveUsers()   { s.save(keyUsers, s.users) }
func (s *Store) savePosts()   { s.save(keyPosts, s.posts) }
func (s *Store) saveChats()   { s.save(keyChats, s.chats) }
func (s *Store) saveReports() { s.save(keyReports, s.reports) }
func (s *Store) saveAudit()   { s.save(keyAudit, s.audit) }

func (s *Store) saveAll() {
	s.saveUsers()
	s.savePosts()
	s.saveChats()
	s.saveReports()
	s.saveAudit()
}

/* =============================== Lookups ================================ */

// Callers must hold s.mu.

func (s *Store) userByID(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// activeUserByID resolves an account that is allowed to act. A ban can
// land while a previously issued token is still valid, so write paths
// re-check the actor's status here instead of trusting the token.
func (s *Store) activeUserByID(id string) (*models.User, error) {
	u := s.userByID(id)
	if u == nil {
		return nil, store.ErrNotFound
	}
	if u.AccountStatus == models.AccountBanned {
		return nil, store.ErrBanned
	}
	return u, nil
}

func (s *Store) userByIdentifier(identifier string) *models.User {
	email := strings.ToLower(strings.TrimSpace(identifier))
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email || u.Phone == identifier {
			return u
		}
	}
	return nil
}

func (s *Store) emailTaken(email, exceptID string) bool {
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.ID != exceptID && strings.ToLower(u.Email) == email {
			return true
		}
	}
	return false
}

func (s *Store) phoneTaken(phone, exceptID string) bool {
	for _, u := range s.users {
		if u.ID != exceptID && u.Phone == phone {
			return true
		}
	}
	return false
}

func (s *Store) postByID(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Store) chatByID(id string) *models.Chat {
	for _, c := range s.chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// displayName resolves a possibly deleted user id for denormalized
// snapshots; dangling ids render as the unknown-user fallback.
func (s *Store) displayName(id string) string {
	if u := s.userByID(id); u != nil {
		return u.FullName
	}
	return "مستخدم محذوف"
}
