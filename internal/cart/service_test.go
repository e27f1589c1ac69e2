package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/medicart/medicart/internal/logging"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), NewMemoryRepository(), logging.Discard())
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	scope := GuestScope("g1")

	for _, qty := range []int{2, 3, 1} {
		if _, err := svc.AddItem(ctx, scope, Line{ItemID: "aspirin", Name: "Aspirin", UnitPrice: 499, Quantity: qty}); err != nil {
			t.Fatalf("add item: %v", err)
		}
	}

	c, err := svc.Get(ctx, scope)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if got := c.Quantity("aspirin"); got != 6 {
		t.Fatalf("expected quantity 6, got %d", got)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(c.Lines))
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	scope := GuestScope("g1")

	if _, err := svc.AddItem(ctx, scope, Line{ItemID: "a", UnitPrice: 100, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddItem(ctx, scope, Line{ItemID: "a", UnitPrice: -1, Quantity: 1}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestRemoveItemIsNoOpWhenAbsent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	scope := GuestScope("g1")

	if _, err := svc.AddItem(ctx, scope, Line{ItemID: "aspirin", UnitPrice: 499, Quantity: 2}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	c, err := svc.RemoveItem(ctx, scope, "ibuprofen")
	if err != nil {
		t.Fatalf("remove absent item: %v", err)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("expected cart unchanged, got %d lines", len(c.Lines))
	}

	c, err = svc.RemoveItem(ctx, scope, "aspirin")
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(c.Lines))
	}
}

func TestTotalSumsLines(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	scope := UserScope("u1")

	if _, err := svc.AddItem(ctx, scope, Line{ItemID: "aspirin", UnitPrice: 499, Quantity: 2}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.AddItem(ctx, scope, Line{ItemID: "bandage", UnitPrice: 250, Quantity: 3}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	c, err := svc.Get(ctx, scope)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if got := c.Total(); got != 2*499+3*250 {
		t.Fatalf("unexpected total %d", got)
	}
}

func TestTransferMergesAdditivelyAndClearsGuest(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	guestScope := GuestScope("g1")
	userScope := UserScope("u1")

	if _, err := svc.AddItem(ctx, guestScope, Line{ItemID: "aspirin", UnitPrice: 499, Quantity: 2}); err != nil {
		t.Fatalf("seed guest cart: %v", err)
	}
	if _, err := svc.AddItem(ctx, guestScope, Line{ItemID: "vitamin-c", UnitPrice: 899, Quantity: 1}); err != nil {
		t.Fatalf("seed guest cart: %v", err)
	}
	if _, err := svc.AddItem(ctx, userScope, Line{ItemID: "aspirin", UnitPrice: 499, Quantity: 1}); err != nil {
		t.Fatalf("seed user cart: %v", err)
	}

	if err := svc.Transfer(ctx, "g1", "u1"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	user, err := svc.Get(ctx, userScope)
	if err != nil {
		t.Fatalf("get user cart: %v", err)
	}
	if got := user.Quantity("aspirin"); got != 3 {
		t.Fatalf("expected merged quantity 3, got %d", got)
	}
	if got := user.Quantity("vitamin-c"); got != 1 {
		t.Fatalf("expected inserted quantity 1, got %d", got)
	}

	guest, err := svc.Get(ctx, guestScope)
	if err != nil {
		t.Fatalf("get guest cart: %v", err)
	}
	if !guest.IsEmpty() {
		t.Fatalf("expected guest cart cleared, got %d lines", len(guest.Lines))
	}
}

func TestTransferIsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, GuestScope("g1"), Line{ItemID: "aspirin", UnitPrice: 499, Quantity: 2}); err != nil {
		t.Fatalf("seed guest cart: %v", err)
	}

	if err := svc.Transfer(ctx, "g1", "u1"); err != nil {
		t.Fatalf("first transfer: %v", err)
	}
	if err := svc.Transfer(ctx, "g1", "u1"); err != nil {
		t.Fatalf("second transfer: %v", err)
	}

	user, err := svc.Get(ctx, UserScope("u1"))
	if err != nil {
		t.Fatalf("get user cart: %v", err)
	}
	if got := user.Quantity("aspirin"); got != 2 {
		t.Fatalf("expected quantity 2 after re-running transfer, got %d", got)
	}
}

func TestTransferPreservesInsertionOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, UserScope("u1"), Line{ItemID: "bandage", UnitPrice: 250, Quantity: 1}); err != nil {
		t.Fatalf("seed user cart: %v", err)
	}
	if _, err := svc.AddItem(ctx, GuestScope("g1"), Line{ItemID: "aspirin", UnitPrice: 499, Quantity: 1}); err != nil {
		t.Fatalf("seed guest cart: %v", err)
	}

	if err := svc.Transfer(ctx, "g1", "u1"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	user, err := svc.Get(ctx, UserScope("u1"))
	if err != nil {
		t.Fatalf("get user cart: %v", err)
	}
	if len(user.Lines) != 2 || user.Lines[0].ItemID != "bandage" || user.Lines[1].ItemID != "aspirin" {
		t.Fatalf("unexpected line order: %+v", user.Lines)
	}
}
