package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/mohami-backend/internal/auth"
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

// newAdminApp mounts the admin routes as the given acting admin.
func newAdminApp(t *testing.T, st store.Store, actorID string) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: auth.ErrorHandler})
	app.Use(injectAuth(actorID, "admin"))

	h := NewHandler(st)
	app.Get("/api/admin/users", h.ListUsers)
	app.Post("/api/admin/lawyers/:id/verification", h.SetVerification)
	app.Post("/api/admin/users/:id/status", h.SetAccountStatus)
	app.Delete("/api/admin/users/:id", h.DeleteUser)
	app.Post("/api/admin/admins", h.CreateAdmin)
	app.Get("/api/admin/audit", h.AuditLog)
	app.Get("/api/admin/chats", h.ListChats)
	return app
}

func seededStore(t *testing.T) store.Store {
	t.Helper()
	st, err := memory.New(memory.Options{Seed: store.DefaultSeed()})
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	return st
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body map[string]any) (map[string]any, int) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(r)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return out, resp.StatusCode
}

/* ============================================================================
   Tests — verification workflow
   ============================================================================ */

func Test_Verification_ApproveUnblocksLogin(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	out, code := doJSON(t, app, "POST", "/api/admin/lawyers/"+store.SeedLawyerAhmedID+"/verification", map[string]any{
		"status": "approved",
	})
	if code != 200 {
		t.Fatalf("want 200, got %d: %#v", code, out)
	}
	lawyer, _ := out["lawyer"].(map[string]any)
	if lawyer["verification"] != "approved" {
		t.Fatalf("verification not applied: %#v", out)
	}

	if _, err := st.Login(context.Background(), "lawyer3@app.com", "password123"); err != nil {
		t.Fatalf("approved lawyer should log in: %v", err)
	}
}

func Test_Verification_SecondDecisionConflicts(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	_, code := doJSON(t, app, "POST", "/api/admin/lawyers/"+store.SeedLawyerAhmedID+"/verification", map[string]any{
		"status": "rejected",
	})
	if code != 200 {
		t.Fatalf("first decision: want 200, got %d", code)
	}

	out, code := doJSON(t, app, "POST", "/api/admin/lawyers/"+store.SeedLawyerAhmedID+"/verification", map[string]any{
		"status": "approved",
	})
	if code != 409 {
		t.Fatalf("second decision: want 409, got %d: %#v", code, out)
	}
	if out["code"] != "INVALID_TRANSITION" {
		t.Fatalf("want INVALID_TRANSITION, got %#v", out)
	}
}

func Test_Verification_RejectsBadStatus(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	out, code := doJSON(t, app, "POST", "/api/admin/lawyers/"+store.SeedLawyerAhmedID+"/verification", map[string]any{
		"status": "pending",
	})
	if code != 400 {
		t.Fatalf("want 400 validation error, got %d: %#v", code, out)
	}
}

/* ============================================================================
   Tests — ban / delete / admin management
   ============================================================================ */

func Test_Ban_BlocksLoginUntilUnbanned(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)
	ctx := context.Background()

	_, code := doJSON(t, app, "POST", "/api/admin/users/"+store.SeedClientSaraID+"/status", map[string]any{
		"status": "banned",
	})
	if code != 200 {
		t.Fatalf("ban: want 200, got %d", code)
	}
	if _, err := st.Login(ctx, "client2@app.com", "password123"); err != store.ErrBanned {
		t.Fatalf("banned login: want ErrBanned, got %v", err)
	}

	_, code = doJSON(t, app, "POST", "/api/admin/users/"+store.SeedClientSaraID+"/status", map[string]any{
		"status": "active",
	})
	if code != 200 {
		t.Fatalf("unban: want 200, got %d", code)
	}
	if _, err := st.Login(ctx, "client2@app.com", "password123"); err != nil {
		t.Fatalf("unbanned login should work: %v", err)
	}
}

func Test_Ban_SuperAdminIsProtected(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	out, code := doJSON(t, app, "POST", "/api/admin/users/"+store.SeedSuperAdminID+"/status", map[string]any{
		"status": "banned",
	})
	if code != 403 {
		t.Fatalf("want 403, got %d: %#v", code, out)
	}
	if out["code"] != "PROTECTED_USER" {
		t.Fatalf("want PROTECTED_USER, got %#v", out)
	}
}

func Test_Delete_AdminTargetNeedsSuperAdmin(t *testing.T) {
	st := seededStore(t)

	// A regular admin cannot delete the other admin account.
	regular := newAdminApp(t, st, store.SeedAdminID)
	r := httptest.NewRequest("DELETE", "/api/admin/users/"+store.SeedAdminID, nil)
	resp, _ := regular.Test(r)
	if resp.StatusCode != 403 {
		t.Fatalf("regular admin: want 403, got %d", resp.StatusCode)
	}

	// The super admin can.
	super := newAdminApp(t, st, store.SeedSuperAdminID)
	r = httptest.NewRequest("DELETE", "/api/admin/users/"+store.SeedAdminID, nil)
	resp, _ = super.Test(r)
	if resp.StatusCode != 204 {
		t.Fatalf("super admin: want 204, got %d", resp.StatusCode)
	}

	if _, err := st.GetUser(context.Background(), store.SeedAdminID); err != store.ErrNotFound {
		t.Fatalf("deleted admin should be gone, got %v", err)
	}
}

func Test_CreateAdmin_SuperAdminOnly(t *testing.T) {
	st := seededStore(t)
	body := map[string]any{
		"full_name": "مشرف ثالث", "email": "admin3@app.com",
		"phone": "07790000005", "password": "secret123",
	}

	regular := newAdminApp(t, st, store.SeedAdminID)
	out, code := doJSON(t, regular, "POST", "/api/admin/admins", body)
	if code != 403 {
		t.Fatalf("regular admin: want 403, got %d: %#v", code, out)
	}

	super := newAdminApp(t, st, store.SeedSuperAdminID)
	out, code = doJSON(t, super, "POST", "/api/admin/admins", body)
	if code != 201 {
		t.Fatalf("super admin: want 201, got %d: %#v", code, out)
	}
	if out["role"] != "admin" {
		t.Fatalf("created account should be an admin: %#v", out)
	}
}

/* ============================================================================
   Tests — listings
   ============================================================================ */

func Test_ListUsers_RoleFilter(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	r := httptest.NewRequest("GET", "/api/admin/users?role=lawyer", nil)
	resp, _ := app.Test(r)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var users []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&users)
	if len(users) != 3 {
		t.Fatalf("seed holds 3 lawyers, got %d", len(users))
	}
	for _, u := range users {
		if u["role"] != "lawyer" {
			t.Fatalf("filter leaked a non-lawyer: %#v", u)
		}
		if _, leaked := u["password_hash"]; leaked {
			t.Fatalf("password hash must not be exposed")
		}
	}

	r = httptest.NewRequest("GET", "/api/admin/users?role=wizard", nil)
	resp, _ = app.Test(r)
	if resp.StatusCode != 400 {
		t.Fatalf("bad role filter: want 400, got %d", resp.StatusCode)
	}
}

func Test_ListUsers_ExposesCredentialDocument(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	r := httptest.NewRequest("GET", "/api/admin/users?role=lawyer", nil)
	resp, _ := app.Test(r)
	var users []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&users)

	found := false
	for _, u := range users {
		if u["id"] == store.SeedLawyerAhmedID {
			found = true
			if u["id_document_ref"] != "seed://lawyer3-id" {
				t.Fatalf("verification review needs the credential document: %#v", u)
			}
		}
	}
	if !found {
		t.Fatalf("pending lawyer missing from listing")
	}
}

func Test_AuditLog_NewestFirstOverHTTP(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	_, _ = doJSON(t, app, "POST", "/api/admin/lawyers/"+store.SeedLawyerAhmedID+"/verification", map[string]any{"status": "approved"})
	_, _ = doJSON(t, app, "POST", "/api/admin/users/"+store.SeedClientSaraID+"/status", map[string]any{"status": "banned"})

	r := httptest.NewRequest("GET", "/api/admin/audit", nil)
	resp, _ := app.Test(r)
	var log []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&log)
	if len(log) != 2 {
		t.Fatalf("want 2 audit entries, got %d", len(log))
	}
	if log[0]["action"] != "account_status" || log[1]["action"] != "lawyer_verification" {
		t.Fatalf("audit order wrong: %#v", log)
	}
}

func Test_ListChats_Oversight(t *testing.T) {
	st := seededStore(t)
	app := newAdminApp(t, st, store.SeedAdminID)

	r := httptest.NewRequest("GET", "/api/admin/chats", nil)
	resp, _ := app.Test(r)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var chats []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&chats)
	if len(chats) != 1 {
		t.Fatalf("seed holds 1 chat, got %d", len(chats))
	}
}
