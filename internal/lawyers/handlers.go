package lawyers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/internal/auth"
	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/validation"
)

/* ================================ DTOs ================================== */

// DirectoryItem is the anonym-free listing row for approved lawyers.
type DirectoryItem struct {
	ID              string           `json:"id"`
	FullName        string           `json:"full_name"`
	Specialty       models.Specialty `json:"specialty"`
	Rating          float64          `json:"rating"`
	NumberOfRatings int              `json:"number_of_ratings"`
	WonCases        int              `json:"won_cases"`
}

type RateRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"omitempty,max=1000"`
}

/* ============================== Handler ================================= */

type Handler struct{ store store.Store }

func NewHandler(st store.Store) *Handler { return &Handler{store: st} }

// @Summary      Lawyer directory
// @Description  Approved lawyers with rating and case counts
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  DirectoryItem
// @Router       /lawyers [get]
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.Context(), models.RoleLawyer)
	if err != nil {
		return err
	}

	out := make([]DirectoryItem, 0, len(users))
	for _, u := range users {
		if u.Lawyer == nil || u.Lawyer.Verification != models.VerificationApproved {
			continue
		}
		if u.AccountStatus == models.AccountBanned {
			continue
		}
		out = append(out, DirectoryItem{
			ID:              u.ID,
			FullName:        u.FullName,
			Specialty:       u.Lawyer.Specialty,
			Rating:          u.Lawyer.Rating,
			NumberOfRatings: u.Lawyer.NumberOfRatings,
			WonCases:        u.Lawyer.WonCases,
		})
	}
	return c.JSON(out)
}

// @Summary      Lawyer profile
// @Description  Full public profile including client reviews
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "lawyer id"
// @Success      200  {object}  models.PublicUser
// @Failure      404  {object}  models.ErrorResponse
// @Router       /lawyers/{id} [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	u, err := h.store.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if u.Role != models.RoleLawyer {
		return fiber.ErrNotFound
	}
	return c.JSON(models.NewPublicUser(u))
}

// @Summary      Rate a lawyer
// @Description  Client folds a 1–5 rating into the lawyer's running mean; optional review text
// @Tags         lawyers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string       true  "lawyer id"
// @Param        payload  body  RateRequest  true  "Rating payload"
// @Success      200  {object}  models.PublicUser
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "lawyer not approved"
// @Router       /lawyers/{id}/rating [post]
func (h *Handler) Rate(c *fiber.Ctx) error {
	var in RateRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	// A ban may postdate the token, so the rater's status is re-checked.
	rater, err := h.store.GetUser(c.Context(), auth.MustUserID(c))
	if err != nil {
		return err
	}
	if rater.AccountStatus == models.AccountBanned {
		return store.ErrBanned
	}

	u, err := h.store.RateLawyer(c.Context(), c.Params("id"), in.Rating, in.Review)
	if err != nil {
		return err
	}
	return c.JSON(models.NewPublicUser(u))
}
