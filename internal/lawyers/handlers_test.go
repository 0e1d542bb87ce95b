package lawyers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/internal/auth"
	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/store/memory"
)

/* ============================================================================
   Helpers
   ============================================================================ */

func injectAuth(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func newLawyerApp(t *testing.T, st store.Store, userID, role string) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: auth.ErrorHandler})
	app.Use(injectAuth(userID, role))

	h := NewHandler(st)
	app.Get("/api/lawyers", h.List)
	app.Get("/api/lawyers/:id", h.Get)
	app.Post("/api/lawyers/:id/rating", h.Rate)
	return app
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	st, err := memory.New(memory.Options{Seed: store.DefaultSeed()})
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	return st
}

/* ============================================================================
   Tests — directory
   ============================================================================ */

func Test_Directory_OnlyApprovedActiveLawyers(t *testing.T) {
	st := seededStore(t)

	// Ban one of the two approved seed lawyers.
	if _, err := st.SetAccountStatus(context.Background(), store.SeedSuperAdminID, store.SeedLawyerAliID, models.AccountBanned); err != nil {
		t.Fatalf("ban: %v", err)
	}

	app := newLawyerApp(t, st, store.SeedClientKhalidID, "client")
	r := httptest.NewRequest("GET", "/api/lawyers", nil)
	resp, _ := app.Test(r)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var list []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&list)
	if len(list) != 1 {
		t.Fatalf("want 1 visible lawyer (Fatima), got %d: %#v", len(list), list)
	}
	if list[0]["id"] != store.SeedLawyerFatimaID {
		t.Fatalf("wrong lawyer in directory: %#v", list[0])
	}
	if _, leaked := list[0]["email"]; leaked {
		t.Fatalf("directory rows should not carry contact details: %#v", list[0])
	}
}

func Test_Profile_NonLawyerIs404(t *testing.T) {
	st := seededStore(t)
	app := newLawyerApp(t, st, store.SeedClientKhalidID, "client")

	r := httptest.NewRequest("GET", "/api/lawyers/"+store.SeedClientSaraID, nil)
	resp, _ := app.Test(r)
	if resp.StatusCode != 404 {
		t.Fatalf("client profile via lawyer route: want 404, got %d", resp.StatusCode)
	}

	r = httptest.NewRequest("GET", "/api/lawyers/"+store.SeedLawyerFatimaID, nil)
	resp, _ = app.Test(r)
	if resp.StatusCode != 200 {
		t.Fatalf("lawyer profile: want 200, got %d", resp.StatusCode)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	lawyer, _ := out["lawyer"].(map[string]any)
	if lawyer == nil || lawyer["reviews"] == nil {
		t.Fatalf("profile should include reviews: %#v", out)
	}
}

func Test_Profile_DoesNotExposeCredentialDocument(t *testing.T) {
	st := seededStore(t)
	app := newLawyerApp(t, st, store.SeedClientKhalidID, "client")

	// Ahmed's seed profile carries a credential document reference.
	r := httptest.NewRequest("GET", "/api/lawyers/"+store.SeedLawyerAhmedID, nil)
	resp, _ := app.Test(r)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if _, leaked := out["id_document_ref"]; leaked {
		t.Fatalf("credential document leaked on the public profile: %#v", out)
	}
	if lawyer, _ := out["lawyer"].(map[string]any); lawyer != nil {
		if _, leaked := lawyer["id_document_ref"]; leaked {
			t.Fatalf("credential document leaked on the public profile: %#v", lawyer)
		}
	}
}

/* ============================================================================
   Tests — rating
   ============================================================================ */

func Test_Rate_UpdatesRunningMean(t *testing.T) {
	st := seededStore(t)
	app := newLawyerApp(t, st, store.SeedClientKhalidID, "client")

	// Fatima sits at 4.9 across 17 ratings; one more 5 keeps 4.9:
	// (4.9*17 + 5) / 18 = 4.905… → 4.9
	body, _ := json.Marshal(map[string]any{"rating": 5, "review": "ممتازة"})
	r := httptest.NewRequest("POST", "/api/lawyers/"+store.SeedLawyerFatimaID+"/rating", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(r)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	lawyer, _ := out["lawyer"].(map[string]any)
	if lawyer["rating"] != 4.9 {
		t.Fatalf("want rating 4.9, got %v", lawyer["rating"])
	}
	if lawyer["number_of_ratings"] != float64(18) {
		t.Fatalf("want 18 ratings, got %v", lawyer["number_of_ratings"])
	}
}

func Test_Rate_OutOfRangeIsValidationError(t *testing.T) {
	st := seededStore(t)
	app := newLawyerApp(t, st, store.SeedClientKhalidID, "client")

	for _, rating := range []int{0, 6} {
		body, _ := json.Marshal(map[string]any{"rating": rating})
		r := httptest.NewRequest("POST", "/api/lawyers/"+store.SeedLawyerFatimaID+"/rating", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(r)
		if resp.StatusCode != 400 {
			t.Fatalf("rating %d: want 400, got %d", rating, resp.StatusCode)
		}
	}
}

func Test_Rate_BannedClientRejected(t *testing.T) {
	st := seededStore(t)
	if _, err := st.SetAccountStatus(context.Background(), store.SeedSuperAdminID, store.SeedClientKhalidID, models.AccountBanned); err != nil {
		t.Fatalf("ban: %v", err)
	}
	app := newLawyerApp(t, st, store.SeedClientKhalidID, "client")

	body, _ := json.Marshal(map[string]any{"rating": 5})
	r := httptest.NewRequest("POST", "/api/lawyers/"+store.SeedLawyerFatimaID+"/rating", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(r)
	if resp.StatusCode != 403 {
		t.Fatalf("banned rater: want 403, got %d", resp.StatusCode)
	}

	u, err := st.GetUser(context.Background(), store.SeedLawyerFatimaID)
	if err != nil {
		t.Fatalf("get lawyer: %v", err)
	}
	if u.Lawyer.NumberOfRatings != 17 {
		t.Fatalf("rating must not be counted, got %d", u.Lawyer.NumberOfRatings)
	}
}

func Test_Rate_PendingLawyerConflicts(t *testing.T) {
	st := seededStore(t)
	app := newLawyerApp(t, st, store.SeedClientKhalidID, "client")

	body, _ := json.Marshal(map[string]any{"rating": 5})
	r := httptest.NewRequest("POST", "/api/lawyers/"+store.SeedLawyerAhmedID+"/rating", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(r)
	if resp.StatusCode != 409 {
		t.Fatalf("want 409, got %d", resp.StatusCode)
	}
}
