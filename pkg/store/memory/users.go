package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

/* ============================ Registration ============================== */

// Register creates a client or lawyer account; admin accounts only come
// from CreateAdmin. Uniqueness of email (case-insensitive) and phone is
// checked before anything is written, so a failed registration never
// mutates the store. New lawyers always start pending with a zeroed
// rating history.
func (s *Store) Register(ctx context.Context, in store.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Role != models.RoleClient && in.Role != models.RoleLawyer {
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
		Role:          in.Role,
		AccountStatus: models.AccountActive,
		CreatedAt:     s.now(),
	}
	if in.Role == models.RoleLawyer {
		u.Lawyer = &models.LawyerProfile{
			Specialty:     in.Specialty,
			Verification:  models.VerificationPending,
			Reviews:       []string{},
			IDDocumentRef: in.IDDocumentRef,
		}
	}

	s.users = append(s.users, u)
	s.saveUsers()
	return u.Clone(), nil
}

/* ================================ Login ================================= */

// Login authenticates by email (case-insensitive) or phone (exact).
// Check order matters and matches the account states a user can be in:
// unknown identifier, wrong password, banned account, unverified lawyer.
func (s *Store) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.userByIdentifier(identifier)
	if u == nil {
		return nil, store.ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, store.ErrBadCredential
	}
	if u.AccountStatus == models.AccountBanned {
		return nil, store.ErrBanned
	}
	if u.Role == models.RoleLawyer && u.Lawyer.Verification == models.VerificationPending {
		return nil, store.ErrPendingVerification
	}
	return u.Clone(), nil
}

/* ============================== Accounts ================================ */

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.userByID(id)
	if u == nil {
		return nil, store.ErrNotFound
	}
	return u.Clone(), nil
}

// ListUsers returns users in insertion order, optionally filtered by
// role (empty role means everyone).
func (s *Store) ListUsers(ctx context.Context, role models.Role) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, u.Clone())
	}
	return out, nil
}

// UpdateProfile edits the caller's own account. Phone uniqueness is
// re-checked; a new password is re-hashed.
func (s *Store) UpdateProfile(ctx context.Context, userID string, in store.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(userID)
	if u == nil {
		return nil, store.ErrNotFound
	}
	if in.Phone != "" && in.Phone != u.Phone {
		if s.phoneTaken(in.Phone, u.ID) {
			return nil, store.ErrPhoneTaken
		}
		u.Phone = in.Phone
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		u.FullName = name
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	s.saveUsers()
	return u.Clone(), nil
}

// AcceptDisclaimer marks the one-time disclaimer flag for a user.
func (s *Store) AcceptDisclaimer(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(userID)
	if u == nil {
		return store.ErrNotFound
	}
	if !u.DisclaimerAccepted {
		u.DisclaimerAccepted = true
		s.saveUsers()
	}
	return nil
}
