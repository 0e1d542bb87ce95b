package chats

import (
	"bytes"
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

// injectAuth puts the auth locals into the Fiber context so
// MustUserID/MustRole work without a real JWT.
func injectAuth(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func newChatApp(t *testing.T, st store.Store, userID, role string) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: auth.ErrorHandler})
	app.Use(injectAuth(userID, role))

	h := NewHandler(st)
	app.Post("/api/chats", h.Start)
	app.Get("/api/chats", h.ListMine)
	app.Get("/api/chats/:id", h.Get)
	app.Post("/api/chats/:id/messages", h.SendMessage)
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
   Tests — the consult flow from the client's side
   ============================================================================ */

// A client picks a lawyer from a post's offers, opens a chat, and sends
// the first message.
func Test_Chat_ClientSelectsLawyerAndWrites(t *testing.T) {
	st := seededStore(t)
	app := newChatApp(t, st, store.SeedClientSaraID, "client")

	// Opening the chat returns an empty thread.
	chat, code := doJSON(t, app, "POST", "/api/chats", map[string]any{
		"lawyer_id": store.SeedLawyerAliID,
	})
	if code != 200 {
		t.Fatalf("start chat: want 200, got %d: %#v", code, chat)
	}
	chatID, _ := chat["id"].(string)
	if chatID == "" {
		t.Fatalf("missing chat id: %#v", chat)
	}
	if msgs, _ := chat["messages"].([]any); len(msgs) != 0 {
		t.Fatalf("fresh chat must be empty, got %#v", chat["messages"])
	}

	// Reopening yields the same chat, not a duplicate.
	again, _ := doJSON(t, app, "POST", "/api/chats", map[string]any{
		"lawyer_id": store.SeedLawyerAliID,
	})
	if again["id"] != chatID {
		t.Fatalf("start chat is not idempotent: %v vs %v", again["id"], chatID)
	}

	// First message lands with the client as sender.
	msg, code := doJSON(t, app, "POST", "/api/chats/"+chatID+"/messages", map[string]any{
		"text": "مرحبا، أحتاج استشارة",
	})
	if code != 201 {
		t.Fatalf("send message: want 201, got %d: %#v", code, msg)
	}
	if msg["sender_id"] != store.SeedClientSaraID {
		t.Fatalf("wrong sender: %#v", msg)
	}

	got, code := doJSON(t, app, "GET", "/api/chats/"+chatID, nil)
	if code != 200 {
		t.Fatalf("get chat: want 200, got %d", code)
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("want 1 message, got %d", len(msgs))
	}
	first, _ := msgs[0].(map[string]any)
	if first["text"] != "مرحبا، أحتاج استشارة" {
		t.Fatalf("wrong message text: %#v", first)
	}
}

func Test_Chat_PendingLawyerNotReachable(t *testing.T) {
	st := seededStore(t)
	app := newChatApp(t, st, store.SeedClientSaraID, "client")

	out, code := doJSON(t, app, "POST", "/api/chats", map[string]any{
		"lawyer_id": store.SeedLawyerAhmedID,
	})
	if code != 409 {
		t.Fatalf("want 409 for pending lawyer, got %d: %#v", code, out)
	}
	if out["code"] != "LAWYER_NOT_APPROVED" {
		t.Fatalf("want LAWYER_NOT_APPROVED, got %#v", out)
	}
}

func Test_Chat_OutsiderCannotReadOrWrite(t *testing.T) {
	st := seededStore(t)
	seedChatID := store.ChatID(store.SeedClientKhalidID, store.SeedLawyerFatimaID)

	// Sara is not part of the Khalid/Fatima seed chat.
	outsider := newChatApp(t, st, store.SeedClientSaraID, "client")

	out, code := doJSON(t, outsider, "GET", "/api/chats/"+seedChatID, nil)
	if code != 403 {
		t.Fatalf("outsider read: want 403, got %d: %#v", code, out)
	}

	out, code = doJSON(t, outsider, "POST", "/api/chats/"+seedChatID+"/messages", map[string]any{
		"text": "دخيل",
	})
	if code != 403 {
		t.Fatalf("outsider write: want 403, got %d: %#v", code, out)
	}
	if out["code"] != "NOT_PARTICIPANT" {
		t.Fatalf("want NOT_PARTICIPANT, got %#v", out)
	}
}

func Test_Chat_AdminReadsButNeverWrites(t *testing.T) {
	st := seededStore(t)
	seedChatID := store.ChatID(store.SeedClientKhalidID, store.SeedLawyerFatimaID)

	admin := newChatApp(t, st, store.SeedAdminID, "admin")

	got, code := doJSON(t, admin, "GET", "/api/chats/"+seedChatID, nil)
	if code != 200 {
		t.Fatalf("admin read: want 200, got %d: %#v", code, got)
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("seed chat should carry 2 messages, got %d", len(msgs))
	}

	out, code := doJSON(t, admin, "POST", "/api/chats/"+seedChatID+"/messages", map[string]any{
		"text": "تدخل إداري",
	})
	if code != 403 {
		t.Fatalf("admin write: want 403, got %d: %#v", code, out)
	}
}

func Test_Chat_ListMineShowsOnlyOwnThreads(t *testing.T) {
	st := seededStore(t)

	khalid := newChatApp(t, st, store.SeedClientKhalidID, "client")
	req := httptest.NewRequest("GET", "/api/chats", nil)
	resp, _ := khalid.Test(req)
	var mine []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&mine)
	if len(mine) != 1 {
		t.Fatalf("khalid should see the seed chat only, got %d", len(mine))
	}

	sara := newChatApp(t, st, store.SeedClientSaraID, "client")
	req = httptest.NewRequest("GET", "/api/chats", nil)
	resp, _ = sara.Test(req)
	var empty []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&empty)
	if len(empty) != 0 {
		t.Fatalf("sara has no chats yet, got %d", len(empty))
	}
}
