package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/internal/auth"
	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/validation"
)

/* ================================ DTOs ================================== */

type VerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type AccountStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active banned"`
}

type CreateAdminRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// AdminUser is the account shape admin endpoints return: the public
// shape plus the lawyer's credential document, which the verification
// review needs to see.
type AdminUser struct {
	models.PublicUser
	IDDocumentRef string `json:"id_document_ref,omitempty"`
}

func newAdminUser(u *models.User) AdminUser {
	out := AdminUser{PublicUser: models.NewPublicUser(u)}
	if u.Lawyer != nil {
		out.IDDocumentRef = u.Lawyer.IDDocumentRef
	}
	return out
}

/* ============================== Handler ================================= */

type Handler struct{ store store.Store }

func NewHandler(st store.Store) *Handler { return &Handler{store: st} }

// @Summary      List users
// @Description  All accounts, optionally filtered by role
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        role  query  string  false  "client | lawyer | admin"
// @Success      200  {array}  AdminUser
// @Router       /admin/users [get]
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	role := models.Role(strings.TrimSpace(c.Query("role")))
	switch role {
	case "", models.RoleClient, models.RoleLawyer, models.RoleAdmin:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid role filter")
	}

	users, err := h.store.ListUsers(c.Context(), role)
	if err != nil {
		return err
	}
	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, newAdminUser(u))
	}
	return c.JSON(out)
}

// @Summary      Decide a lawyer verification
// @Description  Pending lawyers move to approved or rejected; both are terminal
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "lawyer id"
// @Param        payload  body  VerificationRequest  true  "Decision"
// @Success      200  {object}  AdminUser
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "not pending"
// @Router       /admin/lawyers/{id}/verification [post]
func (h *Handler) SetVerification(c *fiber.Ctx) error {
	var in VerificationRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	u, err := h.store.SetLawyerVerification(c.Context(), auth.MustUserID(c), c.Params("id"), models.VerificationStatus(in.Status))
	if err != nil {
		return err
	}
	return c.JSON(newAdminUser(u))
}

// @Summary      Ban or unban an account
// @Description  Never against the super admin or the acting admin themselves
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "user id"
// @Param        payload  body  AccountStatusRequest  true  "New status"
// @Success      200  {object}  AdminUser
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/users/{id}/status [post]
func (h *Handler) SetAccountStatus(c *fiber.Ctx) error {
	var in AccountStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	u, err := h.store.SetAccountStatus(c.Context(), auth.MustUserID(c), c.Params("id"), models.AccountStatus(in.Status))
	if err != nil {
		return err
	}
	return c.JSON(newAdminUser(u))
}

// @Summary      Delete a user
// @Description  Irreversible; references from posts and chats are left dangling
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "user id"
// @Success      204
// @Failure      403  {object}  models.ErrorResponse  "super admin, or admin target without super-admin rights"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	if err := h.store.DeleteUser(c.Context(), auth.MustUserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// @Summary      Create an admin account
// @Description  Super admin only
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateAdminRequest  true  "Admin payload"
// @Success      201  {object}  models.PublicUser
// @Failure      403  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "email or phone already exists"
// @Router       /admin/admins [post]
func (h *Handler) CreateAdmin(c *fiber.Ctx) error {
	var in CreateAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	u, err := h.store.CreateAdmin(c.Context(), auth.MustUserID(c), store.NewUser{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewPublicUser(u))
}

// @Summary      Moderation audit log
// @Description  Admin actions, newest first
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.AuditEntry
// @Router       /admin/audit [get]
func (h *Handler) AuditLog(c *fiber.Ctx) error {
	out, err := h.store.ListAuditLog(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// @Summary      List all chats
// @Description  Read-only oversight of every chat thread
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Chat
// @Router       /admin/chats [get]
func (h *Handler) ListChats(c *fiber.Ctx) error {
	out, err := h.store.ListChats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
