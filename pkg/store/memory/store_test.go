package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

// newSeededStore builds a store loaded with the demo dataset, the same
// state the server boots with when no snapshot exists.
func newSeededStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Options{Seed: store.DefaultSeed()})
	require.NoError(t, err)
	return s
}

// registerClient is a shortcut for tests that need a fresh client.
func registerClient(t *testing.T, s *Store, name, email, phone string) *models.User {
	t.Helper()
	u, err := s.Register(context.Background(), store.NewUser{
		Role:     models.RoleClient,
		FullName: name,
		Email:    email,
		Phone:    phone,
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

// registerLawyer registers a lawyer (always pending) and optionally has
// the seed super admin approve them.
func registerLawyer(t *testing.T, s *Store, name, email, phone string, approve bool) *models.User {
	t.Helper()
	u, err := s.Register(context.Background(), store.NewUser{
		Role:          models.RoleLawyer,
		FullName:      name,
		Email:         email,
		Phone:         phone,
		Password:      "secret123",
		Specialty:     models.SpecialtyCivil,
		IDDocumentRef: "test://id-doc",
	})
	require.NoError(t, err)
	if approve {
		u, err = s.SetLawyerVerification(context.Background(), store.SeedSuperAdminID, u.ID, models.VerificationApproved)
		require.NoError(t, err)
	}
	return u
}
