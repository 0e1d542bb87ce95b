package memory

import (
	"context"
	"math"
	"strings"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

// RateLawyer folds one rating into a lawyer's running mean. The mean is
// rounded to one decimal at every update, matching the product's
// observed behavior (the rounded value is the stored value, so later
// updates compound on it). A trimmed non-empty review is appended
// as-is: no dedup, no cap.
func (s *Store) RateLawyer(ctx context.Context, lawyerID string, rating int, review string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rating < 1 || rating > 5 {
		return nil, store.ErrInvalidRating
	}

	u := s.userByID(lawyerID)
	if u == nil || u.Role != models.RoleLawyer {
		return nil, store.ErrNotFound
	}
	if u.Lawyer.Verification != models.VerificationApproved {
		return nil, store.ErrNotApprovedLawyer
	}

	lp := u.Lawyer
	total := lp.Rating*float64(lp.NumberOfRatings) + float64(rating)
	lp.NumberOfRatings++
	lp.Rating = math.Round(total/float64(lp.NumberOfRatings)*10) / 10

	if r := strings.TrimSpace(review); r != "" {
		lp.Reviews = append(lp.Reviews, r)
	}

	s.saveUsers()
	return u.Clone(), nil
}
