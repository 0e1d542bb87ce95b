package posts

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/internal/auth"
	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/validation"
)

/* ================================ DTOs ================================== */

type CreatePostRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
}

type UpdatePostRequest struct {
	Title       string `json:"title" validate:"omitempty,max=120"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
	// Lawyers must quote a cost; clients and admins must not.
	Cost string `json:"cost" validate:"omitempty,max=60"`
}

/* ============================== Handler ================================= */

type Handler struct{ store store.Store }

func NewHandler(st store.Store) *Handler { return &Handler{store: st} }

/* ================================ Posts ================================= */

// @Summary      Create consultation post
// @Description  Client publishes a new consultation request
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  CreatePostRequest  true  "Post payload"
// @Success      201  {object}  models.Post
// @Failure      400  {object}  models.ValidationErrorResponse
// @Router       /posts [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreatePostRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	p, err := h.store.CreatePost(c.Context(), auth.MustUserID(c), in.Title, in.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// @Summary      List posts
// @Description  All consultation posts, most recent first
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Post
// @Router       /posts [get]
func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.store.ListPosts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// @Summary      Get post
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "post id"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  models.ErrorResponse
// @Router       /posts/{id} [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.store.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// @Summary      Edit post
// @Description  Owner or admin edits title/description
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "post id"
// @Param        payload  body  UpdatePostRequest  true  "Changes"
// @Success      200  {object}  models.Post
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /posts/{id} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	var in UpdatePostRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	p, err := h.store.UpdatePost(c.Context(), auth.MustUserID(c), c.Params("id"), in.Title, in.Description)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// @Summary      Delete post
// @Description  Owner or admin removes a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "post id"
// @Success      204
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /posts/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeletePost(c.Context(), auth.MustUserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

/* =============================== Comments =============================== */

// @Summary      Comment on a post
// @Description  Lawyers submit priced offers (cost required); other roles plain comments (cost forbidden)
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "post id"
// @Param        payload  body  AddCommentRequest  true  "Comment payload"
// @Success      201  {object}  models.Comment
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "lawyer not approved"
// @Router       /posts/{id}/comments [post]
func (h *Handler) AddComment(c *fiber.Ctx) error {
	var in AddCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	// The offer-vs-comment rule is a request rule, so it lives here and
	// not in the store.
	role := models.Role(auth.MustRole(c))
	cost := strings.TrimSpace(in.Cost)
	switch role {
	case models.RoleLawyer:
		if cost == "" {
			return validation.Respond(c, map[string][]string{
				"cost": {"This field is required"},
			})
		}
		u, err := h.store.GetUser(c.Context(), auth.MustUserID(c))
		if err != nil {
			return err
		}
		if u.Lawyer == nil || u.Lawyer.Verification != models.VerificationApproved {
			return store.ErrNotApprovedLawyer
		}
	default:
		if cost != "" {
			return validation.Respond(c, map[string][]string{
				"cost": {"Only lawyers may quote a cost"},
			})
		}
	}

	out, err := h.store.AddComment(c.Context(), c.Params("id"), auth.MustUserID(c), in.Text, cost)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
