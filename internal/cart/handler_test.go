package cart

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/medicart/medicart/internal/identity"
	"github.com/medicart/medicart/internal/logging"
	"github.com/medicart/medicart/internal/middleware"
	"github.com/medicart/medicart/internal/profile"
	"github.com/medicart/medicart/internal/session"
)

func setupCartApp(t *testing.T) (*fiber.App, *session.Store, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	sessions := session.NewStore(cache, time.Hour)
	svc := NewService(NewRedisRepository(cache), NewMemoryRepository(), logging.Discard())
	handler := NewHandler(svc, sessions)

	app := fiber.New()
	grp := app.Group("/cart", middleware.RequireDeviceID())
	grp.Get("/", handler.Get)
	grp.Post("/items", handler.AddItem)
	grp.Delete("/items/:itemID", handler.RemoveItem)
	grp.Delete("/", handler.Clear)

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, sessions, cleanup
}

func doCartRequest(t *testing.T, app *fiber.App, method, target, body string) cartResponse {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-Device-ID", "device-1")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("%s %s: expected 200, got %d", method, target, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded cartResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return decoded
}

func TestCartEndpointsGuestFlow(t *testing.T) {
	app, _, cleanup := setupCartApp(t)
	defer cleanup()

	resp := doCartRequest(t, app, fiber.MethodPost, "/cart/items", `{"item_id":"aspirin","name":"Aspirin","unit_price":499,"quantity":2}`)
	if len(resp.Lines) != 1 || resp.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected cart after add: %+v", resp)
	}

	resp = doCartRequest(t, app, fiber.MethodPost, "/cart/items", `{"item_id":"aspirin","unit_price":499}`)
	if resp.Lines[0].Quantity != 3 {
		t.Fatalf("expected default quantity 1 to accumulate to 3, got %d", resp.Lines[0].Quantity)
	}
	if resp.Total != 3*499 {
		t.Fatalf("unexpected total %d", resp.Total)
	}

	resp = doCartRequest(t, app, fiber.MethodDelete, "/cart/items/aspirin", "")
	if len(resp.Lines) != 0 {
		t.Fatalf("expected empty cart after remove, got %+v", resp.Lines)
	}
}

func TestCartScopeFollowsSession(t *testing.T) {
	app, sessions, cleanup := setupCartApp(t)
	defer cleanup()

	// Guest adds an item.
	doCartRequest(t, app, fiber.MethodPost, "/cart/items", `{"item_id":"aspirin","unit_price":499,"quantity":2}`)

	// The device signs in; the cart endpoints now address the user cart,
	// which is empty because no transfer ran here.
	user := identity.Account{ID: "u1", Email: "ada@example.com"}
	if err := sessions.Set(context.Background(), "device-1", session.SignedIn(user, profile.RoleCustomer, "token")); err != nil {
		t.Fatalf("set session: %v", err)
	}

	resp := doCartRequest(t, app, fiber.MethodGet, "/cart/", "")
	if len(resp.Lines) != 0 {
		t.Fatalf("expected empty user cart, got %+v", resp.Lines)
	}

	// Signing out surfaces the untouched guest cart again.
	if err := sessions.Set(context.Background(), "device-1", session.SignedOut()); err != nil {
		t.Fatalf("clear session: %v", err)
	}
	resp = doCartRequest(t, app, fiber.MethodGet, "/cart/", "")
	if len(resp.Lines) != 1 || resp.Lines[0].Quantity != 2 {
		t.Fatalf("expected guest cart preserved, got %+v", resp.Lines)
	}
}
