package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aldoetobex/mohami-backend/pkg/models"
)

// Fixed ids so seeded posts and chats can reference seeded users.
const (
	SeedSuperAdminID   = "2f5a1d3e-0000-4000-8000-000000000001"
	SeedAdminID        = "2f5a1d3e-0000-4000-8000-000000000007"
	SeedLawyerAliID    = "2f5a1d3e-0000-4000-8000-000000000002"
	SeedLawyerFatimaID = "2f5a1d3e-0000-4000-8000-000000000003"
	SeedLawyerAhmedID  = "2f5a1d3e-0000-4000-8000-000000000004"
	SeedClientKhalidID = "2f5a1d3e-0000-4000-8000-000000000005"
	SeedClientSaraID   = "2f5a1d3e-0000-4000-8000-000000000006"
)

// SeedData is the initial dataset applied when no snapshot exists yet.
type SeedData struct {
	Users []*models.User
	Posts []*models.Post
	Chats []*models.Chat
}

func seedHash(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h)
}

// DefaultSeed returns the demo dataset: the super admin, one extra
// admin, three lawyers (one still pending), two clients, two
// consultation posts, and one chat with a short history.
func DefaultSeed() SeedData {
	createdAt := time.Date(2023, 10, 1, 8, 0, 0, 0, time.UTC)
	demoHash := seedHash("password123")

	users := []*models.User{
		{
			ID: SeedSuperAdminID, Email: "hhhhdddd2017@gmail.com", Phone: "07700000000",
			FullName: "المدير الخارق", PasswordHash: seedHash("hadisalh"),
			Role: models.RoleAdmin, AccountStatus: models.AccountActive,
			SuperAdmin: true, CreatedAt: createdAt,
		},
		{
			ID: SeedAdminID, Email: "admin2@app.com", Phone: "07711111111",
			FullName: "المشرف أحمد", PasswordHash: demoHash,
			Role: models.RoleAdmin, AccountStatus: models.AccountActive, CreatedAt: createdAt,
		},
		{
			ID: SeedLawyerAliID, Email: "lawyer1@app.com", Phone: "07712222222",
			FullName: "المحامي علي", PasswordHash: demoHash,
			Role: models.RoleLawyer, AccountStatus: models.AccountActive, CreatedAt: createdAt,
			Lawyer: &models.LawyerProfile{
				Specialty: models.SpecialtyCriminal, Verification: models.VerificationApproved,
				Rating: 4.8, NumberOfRatings: 12, Reviews: []string{"ممتاز", "سريع"}, WonCases: 25,
			},
		},
		{
			ID: SeedLawyerFatimaID, Email: "lawyer2@app.com", Phone: "07713333333",
			FullName: "المحامية فاطمة", PasswordHash: demoHash,
			Role: models.RoleLawyer, AccountStatus: models.AccountActive, CreatedAt: createdAt,
			Lawyer: &models.LawyerProfile{
				Specialty: models.SpecialtyFamily, Verification: models.VerificationApproved,
				Rating: 4.9, NumberOfRatings: 17, Reviews: []string{"متعاونة جدا"}, WonCases: 40,
			},
		},
		{
			ID: SeedLawyerAhmedID, Email: "lawyer3@app.com", Phone: "07714444444",
			FullName: "المحامي أحمد", PasswordHash: demoHash,
			Role: models.RoleLawyer, AccountStatus: models.AccountActive, CreatedAt: createdAt,
			Lawyer: &models.LawyerProfile{
				Specialty: models.SpecialtyCivil, Verification: models.VerificationPending,
				Reviews: []string{}, IDDocumentRef: "seed://lawyer3-id",
			},
		},
		{
			ID: SeedClientKhalidID, Email: "client1@app.com", Phone: "07811111111",
			FullName: "العميل خالد", PasswordHash: demoHash,
			Role: models.RoleClient, AccountStatus: models.AccountActive, CreatedAt: createdAt,
		},
		{
			ID: SeedClientSaraID, Email: "client2@app.com", Phone: "07922222222",
			FullName: "العميلة سارة", PasswordHash: demoHash,
			Role: models.RoleClient, AccountStatus: models.AccountActive, CreatedAt: createdAt,
		},
	}

	posts := []*models.Post{
		{
			ID:         "9c0d2b1a-0000-4000-8000-000000000102",
			AuthorID:   SeedClientSaraID,
			AuthorName: "العميلة سارة", AuthorRole: models.RoleClient,
			Title:       "قضية نزاع عمالي",
			Description: "تم فصلي من العمل بشكل تعسفي وأرغب في رفع قضية على الشركة للمطالبة بحقوقي. أبحث عن محامي متخصص في القضايا العمالية.",
			CreatedAt:   time.Date(2023, 10, 26, 14, 30, 0, 0, time.UTC),
			Comments:    []models.Comment{},
		},
		{
			ID:         "9c0d2b1a-0000-4000-8000-000000000101",
			AuthorID:   SeedClientKhalidID,
			AuthorName: "العميل خالد", AuthorRole: models.RoleClient,
			Title:       "استشارة بخصوص عقد إيجار",
			Description: "أحتاج مساعدة في مراجعة عقد إيجار لشقة سكنية والتأكد من قانونية جميع البنود قبل التوقيع. العقد مكون من 5 صفحات.",
			CreatedAt:   time.Date(2023, 10, 25, 10, 0, 0, 0, time.UTC),
			Comments: []models.Comment{
				{
					ID:              "9c0d2b1a-0000-4000-8000-000000000201",
					AuthorID:        SeedLawyerFatimaID,
					AuthorName:      "المحامية فاطمة",
					AuthorRole:      models.RoleLawyer,
					AuthorSpecialty: models.SpecialtyFamily,
					Text:            "يمكنني مراجعة العقد وتقديم استشارة كاملة خلال 24 ساعة.",
					Cost:            "75,000 دينار عراقي",
					CreatedAt:       time.Date(2023, 10, 25, 12, 0, 0, 0, time.UTC),
				},
			},
		},
	}

	chatStart := time.Date(2023, 10, 25, 13, 0, 0, 0, time.UTC)
	chats := []*models.Chat{
		{
			ID:             ChatID(SeedClientKhalidID, SeedLawyerFatimaID),
			ParticipantIDs: [2]string{SeedLawyerFatimaID, SeedClientKhalidID},
			CreatedAt:      chatStart,
			Messages: []models.ChatMessage{
				{
					ID:        "9c0d2b1a-0000-4000-8000-000000000301",
					SenderID:  SeedClientKhalidID,
					Text:      "مرحبا، بخصوص عرضك على منشوري",
					Timestamp: chatStart,
				},
				{
					ID:        "9c0d2b1a-0000-4000-8000-000000000302",
					SenderID:  SeedLawyerFatimaID,
					Text:      "أهلاً بك، يسعدني مساعدتك. هل يمكنك إرسال نسخة من العقد؟",
					Timestamp: chatStart.Add(2 * time.Minute),
				},
			},
		},
	}

	return SeedData{Users: users, Posts: posts, Chats: chats}
}
