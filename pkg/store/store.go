// Package store defines the entity-store contract the whole application
// is written against. Every workflow is a synchronous state transition:
// the store validates, mutates its collections, and returns the new
// state or a domain error. Implementations own all invariants; handlers
// only parse requests and enforce request-level rules.
package store

import (
	"context"

	"github.com/aldoetobex/mohami-backend/pkg/models"
)

// NewUser carries a registration request (client or lawyer).
type NewUser struct {
	Role          models.Role
	FullName      string
	Email         string
	Phone         string
	Password      string
	Specialty     models.Specialty // lawyers only
	IDDocumentRef string           // lawyers only, opaque reference
}

// ProfileUpdate changes a user's own profile. Empty fields are left
// untouched.
type ProfileUpdate struct {
	FullName string
	Phone    string
	Password string
}

// NewReport carries a report submission. ChatID is required for message
// reports so the target message can be located for its preview.
type NewReport struct {
	ReporterID string
	Type       models.ReportType
	TargetID   string
	Reason     string
	ChatID     string
}

// Store is the single source of truth for users, posts, chats, and
// reports. Methods return deep copies; callers never alias store-owned
// memory.
type Store interface {
	// Session / auth gate
	Register(ctx context.Context, in NewUser) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, role models.Role) ([]*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error)
	AcceptDisclaimer(ctx context.Context, userID string) error

	// Moderation engine
	SetLawyerVerification(ctx context.Context, actorID, lawyerID string, status models.VerificationStatus) (*models.User, error)
	SetAccountStatus(ctx context.Context, actorID, userID string, status models.AccountStatus) (*models.User, error)
	CreateAdmin(ctx context.Context, actorID string, in NewUser) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
	ListAuditLog(ctx context.Context) ([]*models.AuditEntry, error)

	// Marketplace workflow
	CreatePost(ctx context.Context, authorID, title, description string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, actorID, postID, title, description string) (*models.Post, error)
	DeletePost(ctx context.Context, actorID, postID string) error
	AddComment(ctx context.Context, postID, authorID, text, cost string) (*models.Comment, error)

	// Messaging channel
	StartChat(ctx context.Context, clientID, lawyerID string) (*models.Chat, error)
	SendMessage(ctx context.Context, chatID, senderID, text string) (*models.ChatMessage, error)
	GetChat(ctx context.Context, chatID string) (*models.Chat, error)
	ListChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error)
	ListChats(ctx context.Context) ([]*models.Chat, error)

	// Rating aggregator
	RateLawyer(ctx context.Context, lawyerID string, rating int, review string) (*models.User, error)

	// Reporting subsystem
	FileReport(ctx context.Context, in NewReport) (*models.Report, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
	ResolveReport(ctx context.Context, reportID string) error
}

// Persister is the key-value snapshot backend a store persists whole
// collections through. Load reports whether the key existed.
type Persister interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
}
