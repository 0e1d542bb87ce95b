package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

// requireAdmin resolves an actor id to an admin account. Caller holds
// the lock.
func (s *Store) requireAdmin(actorID string) (*models.User, error) {
	actor := s.userByID(actorID)
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, store.ErrForbidden
	}
	return actor, nil
}

// recordAudit appends a moderation log entry. Caller holds the lock.
func (s *Store) recordAudit(actorID, action, targetID, detail string) {
	s.audit = append(s.audit, &models.AuditEntry{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		Action:    action,
		TargetID:  targetID,
		Detail:    detail,
		CreatedAt: s.now(),
	})
	s.saveAudit()
}

/* ========================= Lawyer verification ========================== */

// SetLawyerVerification moves a lawyer from pending to approved or
// rejected. Both outcomes are terminal for this sub-machine; banning is
// an independent axis and does not touch verification.
func (s *Store) SetLawyerVerification(ctx context.Context, actorID, lawyerID string, status models.VerificationStatus) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireAdmin(actorID)
	if err != nil {
		return nil, err
	}
	if status != models.VerificationApproved && status != models.VerificationRejected {
		return nil, store.ErrInvalidTransition
	}

	u := s.userByID(lawyerID)
	if u == nil || u.Role != models.RoleLawyer {
		return nil, store.ErrNotFound
	}
	if u.Lawyer.Verification != models.VerificationPending {
		return nil, store.ErrInvalidTransition
	}

	u.Lawyer.Verification = status
	s.saveUsers()
	s.recordAudit(actor.ID, "lawyer_verification", u.ID, string(status))
	return u.Clone(), nil
}

/* ============================ Account status ============================ */

// SetAccountStatus toggles active/banned. Any admin may do it, but
// never against the super admin and never against themselves.
func (s *Store) SetAccountStatus(ctx context.Context, actorID, userID string, status models.AccountStatus) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireAdmin(actorID)
	if err != nil {
		return nil, err
	}
	if status != models.AccountActive && status != models.AccountBanned {
		return nil, store.ErrInvalidTransition
	}

	u := s.userByID(userID)
	if u == nil {
		return nil, store.ErrNotFound
	}
	if u.SuperAdmin {
		return nil, store.ErrProtectedUser
	}
	if u.ID == actor.ID {
		return nil, store.ErrForbidden
	}

	u.AccountStatus = status
	s.saveUsers()
	s.recordAudit(actor.ID, "account_status", u.ID, string(status))
	return u.Clone(), nil
}

/* ============================ Admin accounts ============================ */

// CreateAdmin adds a new admin account. Only the super admin may manage
// admins.
func (s *Store) CreateAdmin(ctx context.Context, actorID string, in store.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireAdmin(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.SuperAdmin {
		return nil, store.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if s.emailTaken(email, "") {
		return nil, store.ErrEmailTaken
	}
	if s.phoneTaken(in.Phone, "") {
		return nil, store.ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:            uuid.NewString(),
		Email:         email,
		Phone:         in.Phone,
		FullName:      strings.TrimSpace(in.FullName),
		PasswordHash:  string(hash),
		Role:          models.RoleAdmin,
		AccountStatus: models.AccountActive,
		CreatedAt:     s.now(),
	}

	s.users = append(s.users, u)
	s.saveUsers()
	s.recordAudit(actor.ID, "admin_created", u.ID, u.Email)
	return u.Clone(), nil
}

/* =============================== Deletion =============================== */

// DeleteUser removes an account for good. The super admin is
// undeletable; deleting another admin is a super-admin-only action.
// Nothing cascades: posts, comments, chats, and reports keep their
// author ids and read paths render the unknown-user fallback.
func (s *Store) DeleteUser(ctx context.Context, actorID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireAdmin(actorID)
	if err != nil {
		return err
	}

	idx := -1
	for i, u := range s.users {
		if u.ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return store.ErrNotFound
	}
	target := s.users[idx]
	if target.SuperAdmin {
		return store.ErrProtectedUser
	}
	if target.Role == models.RoleAdmin && !actor.SuperAdmin {
		return store.ErrForbidden
	}

	s.users = append(s.users[:idx], s.users[idx+1:]...)
	s.saveUsers()
	s.recordAudit(actor.ID, "user_deleted", target.ID, target.Email)
	return nil
}

/* =============================== Audit log ============================== */

// ListAuditLog returns moderation actions, newest first.
func (s *Store) ListAuditLog(ctx context.Context) ([]*models.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.AuditEntry, 0, len(s.audit))
	for i := len(s.audit) - 1; i >= 0; i-- {
		cp := *s.audit[i]
		out = append(out, &cp)
	}
	return out, nil
}
