package models

import "time"

/* =============================== Enums ================================== */

// Role defines the type of user in the system.
type Role string

const (
	RoleClient Role = "client"
	RoleLawyer Role = "lawyer"
	RoleAdmin  Role = "admin"
)

// Specialty is a lawyer's single field of practice. Values are the
// user-facing Arabic labels; they double as the stored enum.
type Specialty string

const (
	SpecialtyCivil      Specialty = "قانون مدني"
	SpecialtyCriminal   Specialty = "قانون جنائي"
	SpecialtyCorporate  Specialty = "قانون شركات"
	SpecialtyFamily     Specialty = "قانون أسرة"
	SpecialtyRealEstate Specialty = "قانون عقاري"
)

// Specialties lists every valid specialty, in display order.
func Specialties() []Specialty {
	return []Specialty{
		SpecialtyCivil, SpecialtyCriminal, SpecialtyCorporate,
		SpecialtyFamily, SpecialtyRealEstate,
	}
}

// ValidSpecialty reports whether s is one of the known specialties.
func ValidSpecialty(s Specialty) bool {
	for _, v := range Specialties() {
		if v == s {
			return true
		}
	}
	return false
}

// VerificationStatus is the admin-review state of a lawyer account.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// AccountStatus is the ban state of any account.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountBanned AccountStatus = "banned"
)

// ReportStatus defines lifecycle states for a moderation report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
)

// ReportType names what a report targets.
type ReportType string

const (
	ReportUser    ReportType = "user"
	ReportPost    ReportType = "post"
	ReportMessage ReportType = "message"
)

/* =============================== Entities =============================== */

// LawyerProfile holds the lawyer-only part of a user account. It is nil
// for clients and admins, so the role tag and the variant data stay in
// sync without casts.
type LawyerProfile struct {
	Specialty       Specialty          `json:"specialty"`
	Verification    VerificationStatus `json:"verification"`
	Rating          float64            `json:"rating"`
	NumberOfRatings int                `json:"number_of_ratings"`
	Reviews         []string           `json:"reviews"`
	WonCases        int                `json:"won_cases"`
	IDDocumentRef   string             `json:"id_document_ref,omitempty"`
}

// User represents a client, lawyer, or admin account.
type User struct {
	ID                 string         `json:"id"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	FullName           string         `json:"full_name"`
	PasswordHash       string         `json:"password_hash,omitempty"`
	Role               Role           `json:"role"`
	AccountStatus      AccountStatus  `json:"account_status"`
	SuperAdmin         bool           `json:"super_admin,omitempty"`
	DisclaimerAccepted bool           `json:"disclaimer_accepted"`
	CreatedAt          time.Time      `json:"created_at"`
	Lawyer             *LawyerProfile `json:"lawyer,omitempty"`
}

// Clone returns a deep copy; callers may mutate it freely without
// touching store-owned state.
func (u *User) Clone() *User {
	cp := *u
	if u.Lawyer != nil {
		lp := *u.Lawyer
		lp.Reviews = append([]string(nil), u.Lawyer.Reviews...)
		cp.Lawyer = &lp
	}
	return &cp
}

// Comment is a response on a consultation post. Lawyer comments are
// priced offers and carry a cost string plus the lawyer's specialty,
// denormalized at creation time.
type Comment struct {
	ID              string    `json:"id"`
	AuthorID        string    `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	AuthorRole      Role      `json:"author_role"`
	AuthorSpecialty Specialty `json:"author_specialty,omitempty"`
	Text            string    `json:"text"`
	Cost            string    `json:"cost,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Post is a client's public request for legal help.
type Post struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorRole  Role      `json:"author_role"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Comments    []Comment `json:"comments"`
}

// Clone returns a deep copy of the post and its comments.
func (p *Post) Clone() *Post {
	cp := *p
	cp.Comments = append([]Comment(nil), p.Comments...)
	return &cp
}

// ChatMessage is one entry in a chat's append-only log.
type ChatMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat is a private two-party thread. Its ID is the sorted participant
// pair, so the pair and the ID determine each other.
type Chat struct {
	ID             string        `json:"id"`
	ParticipantIDs [2]string     `json:"participant_ids"`
	Messages       []ChatMessage `json:"messages"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Clone returns a deep copy of the chat and its messages.
func (c *Chat) Clone() *Chat {
	cp := *c
	cp.Messages = append([]ChatMessage(nil), c.Messages...)
	return &cp
}

// HasParticipant reports whether id is one of the two participants.
func (c *Chat) HasParticipant(id string) bool {
	return c.ParticipantIDs[0] == id || c.ParticipantIDs[1] == id
}

// Report is a moderation ticket against a user, post, or message. The
// preview is a snapshot taken when the report is filed, so later edits
// or deletions of the target never rewrite report history.
type Report struct {
	ID            string       `json:"id"`
	ReporterID    string       `json:"reporter_id"`
	ReporterName  string       `json:"reporter_name"`
	Type          ReportType   `json:"type"`
	TargetID      string       `json:"target_id"`
	TargetPreview string       `json:"target_preview"`
	Reason        string       `json:"reason"`
	Status        ReportStatus `json:"status"`
	ChatID        string       `json:"chat_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// AuditEntry records one admin moderation action.
type AuditEntry struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	TargetID  string    `json:"target_id"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
