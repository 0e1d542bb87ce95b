package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

/* ================================ Chats ================================= */

// StartChat opens (or returns) the chat between a client and an
// approved lawyer. The chat id is the canonical sorted pair, so calling
// this twice with the same pair, in either order, never creates a
// duplicate.
func (s *Store) StartChat(ctx context.Context, clientID, lawyerID string) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.activeUserByID(clientID); err != nil {
		return nil, err
	}
	lawyer := s.userByID(lawyerID)
	if lawyer == nil || lawyer.Role != models.RoleLawyer {
		return nil, store.ErrNotFound
	}
	if clientID == lawyerID {
		return nil, store.ErrForbidden
	}
	if lawyer.Lawyer.Verification != models.VerificationApproved {
		return nil, store.ErrNotApprovedLawyer
	}

	id := store.ChatID(clientID, lawyerID)
	if c := s.chatByID(id); c != nil {
		return c.Clone(), nil
	}

	a, b := clientID, lawyerID
	if b < a {
		a, b = b, a
	}
	c := &models.Chat{
		ID:             id,
		ParticipantIDs: [2]string{a, b},
		Messages:       []models.ChatMessage{},
		CreatedAt:      s.now(),
	}
	s.chats = append(s.chats, c)
	s.saveChats()
	return c.Clone(), nil
}

// SendMessage appends to a chat's log. Only the two participants may
// write; admins get read-only oversight through GetChat/ListChats.
func (s *Store) SendMessage(ctx context.Context, chatID, senderID, text string) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.chatByID(chatID)
	if c == nil {
		return nil, store.ErrNotFound
	}
	if !c.HasParticipant(senderID) {
		return nil, store.ErrNotParticipant
	}
	if _, err := s.activeUserByID(senderID); err != nil {
		return nil, err
	}

	m := models.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Text:      strings.TrimSpace(text),
		Timestamp: s.now(),
	}
	c.Messages = append(c.Messages, m)
	s.saveChats()
	return &m, nil
}

func (s *Store) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.chatByID(chatID)
	if c == nil {
		return nil, store.ErrNotFound
	}
	return c.Clone(), nil
}

// ListChatsForUser returns the chats a user participates in.
func (s *Store) ListChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Chat, 0)
	for _, c := range s.chats {
		if c.HasParticipant(userID) {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// ListChats returns every chat, for admin oversight.
func (s *Store) ListChats(ctx context.Context) ([]*models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, c.Clone())
	}
	return out, nil
}
