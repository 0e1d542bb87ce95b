package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/validation"
)

/* ================================ DTOs ================================= */

// Request body for /signup
type SignupRequest struct {
	Role     string `json:"role" validate:"required,oneof=client lawyer"`
	FullName string `json:"full_name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	// Required for lawyers
	Specialty     string `json:"specialty" validate:"omitempty,specialty"`
	IDDocumentRef string `json:"id_document_ref" validate:"omitempty,max=300"`
}

// Request body for /login; the identifier is an email or a phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=120"`
	Password   string `json:"password" validate:"required"`
}

// Request body for PATCH /me
type UpdateMeRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=80"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

// Standard auth response
type AuthResponse struct {
	Token string            `json:"token"`
	Role  string            `json:"role"`
	User  models.PublicUser `json:"user"`
}

/* ============================== Handler ================================= */

type Handler struct{ store store.Store }

func NewHandler(st store.Store) *Handler { return &Handler{store: st} }

/* =============================== Signup ================================= */

// @Summary      Sign up
// @Description  Register a new user (client or lawyer)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  SignupRequest  true  "Signup payload"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      409      {object}  models.ErrorResponse  "email or phone already exists"
// @Router       /signup [post]
func (h *Handler) Signup(c *fiber.Ctx) error {
	var in SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	// Normalize email
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	// Validate request (Laravel-like error shape)
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	// Lawyer-only required fields
	if in.Role == string(models.RoleLawyer) {
		errs := map[string][]string{}
		if strings.TrimSpace(in.Specialty) == "" {
			errs["specialty"] = append(errs["specialty"], "This field is required")
		}
		if strings.TrimSpace(in.IDDocumentRef) == "" {
			errs["id_document_ref"] = append(errs["id_document_ref"], "This field is required")
		}
		if len(errs) > 0 {
			return validation.Respond(c, errs)
		}
	}

	u, err := h.store.Register(c.Context(), store.NewUser{
		Role:          models.Role(in.Role),
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         strings.TrimSpace(in.Phone),
		Password:      in.Password,
		Specialty:     models.Specialty(strings.TrimSpace(in.Specialty)),
		IDDocumentRef: strings.TrimSpace(in.IDDocumentRef),
	})
	if err != nil {
		return err
	}

	// A fresh lawyer cannot log in yet; no token until approved.
	if u.Role == models.RoleLawyer {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"role": u.Role,
			"user": models.NewPublicUser(u),
		})
	}

	token, _ := IssueToken(u.ID, string(u.Role))
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Token: token, Role: string(u.Role), User: models.NewPublicUser(u),
	})
}

/* ================================ Login ================================= */

// @Summary      Login
// @Description  Authenticate by email or phone and receive a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  LoginRequest  true  "Login payload"
// @Success      200      {object}  AuthResponse
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      401      {object}  models.ErrorResponse
// @Failure      403      {object}  models.ErrorResponse  "banned or pending verification"
// @Failure      404      {object}  models.ErrorResponse  "identifier not registered"
// @Router       /login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	u, err := h.store.Login(c.Context(), strings.TrimSpace(in.Identifier), in.Password)
	if err != nil {
		return err
	}

	token, _ := IssueToken(u.ID, string(u.Role))
	return c.JSON(AuthResponse{Token: token, Role: string(u.Role), User: models.NewPublicUser(u)})
}

/* ================================= Me =================================== */

// @Summary      Get current user profile
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  models.PublicUser
// @Failure      401  {object}  models.ErrorResponse
// @Router       /me [get]
func (h *Handler) Me(c *fiber.Ctx) error {
	u, err := h.store.GetUser(c.Context(), MustUserID(c))
	if err != nil {
		return fiber.ErrUnauthorized
	}
	return c.JSON(models.NewPublicUser(u))
}

// @Summary      Update own profile
// @Description  Change name, phone, or password
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  UpdateMeRequest  true  "Profile changes"
// @Success      200  {object}  models.PublicUser
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "phone already exists"
// @Router       /me [patch]
func (h *Handler) UpdateMe(c *fiber.Ctx) error {
	var in UpdateMeRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	u, err := h.store.UpdateProfile(c.Context(), MustUserID(c), store.ProfileUpdate{
		FullName: in.FullName,
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(models.NewPublicUser(u))
}

/* ============================== Disclaimer ============================== */

// @Summary      Accept the legal disclaimer
// @Description  One-time flag; persists with the account
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /disclaimer [post]
func (h *Handler) AcceptDisclaimer(c *fiber.Ctx) error {
	if err := h.store.AcceptDisclaimer(c.Context(), MustUserID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
