package chats

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/internal/auth"
	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/validation"
)

/* ================================ DTOs ================================== */

type StartChatRequest struct {
	LawyerID string `json:"lawyer_id" validate:"required"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

/* ============================== Handler ================================= */

type Handler struct{ store store.Store }

func NewHandler(st store.Store) *Handler { return &Handler{store: st} }

// @Summary      Start (or reopen) a chat with a lawyer
// @Description  Idempotent: the same client/lawyer pair always maps to the same chat
// @Tags         chats
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  StartChatRequest  true  "Lawyer to contact"
// @Success      200  {object}  models.Chat
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "lawyer not approved"
// @Router       /chats [post]
func (h *Handler) Start(c *fiber.Ctx) error {
	var in StartChatRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	chat, err := h.store.StartChat(c.Context(), auth.MustUserID(c), in.LawyerID)
	if err != nil {
		return err
	}
	return c.JSON(chat)
}

// @Summary      List my chats
// @Tags         chats
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Chat
// @Router       /chats [get]
func (h *Handler) ListMine(c *fiber.Ctx) error {
	out, err := h.store.ListChatsForUser(c.Context(), auth.MustUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// @Summary      Get a chat
// @Description  Participants see their own chats; admins may view any chat read-only
// @Tags         chats
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "chat id"
// @Success      200  {object}  models.Chat
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /chats/{id} [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	chat, err := h.store.GetChat(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if auth.MustRole(c) != string(models.RoleAdmin) && !chat.HasParticipant(auth.MustUserID(c)) {
		return fiber.ErrForbidden
	}
	return c.JSON(chat)
}

// @Summary      Send a message
// @Description  Participants only; admins are read-only observers
// @Tags         chats
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string              true  "chat id"
// @Param        payload  body  SendMessageRequest  true  "Message"
// @Success      201  {object}  models.ChatMessage
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /chats/{id}/messages [post]
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var in SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	m, err := h.store.SendMessage(c.Context(), c.Params("id"), auth.MustUserID(c), in.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}
