package identity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestProvider() *PasswordProvider {
	return NewPasswordProvider(NewMemoryRepository(), []byte("test-secret"), time.Hour)
}

func TestSignUpAndSignIn(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	grant, err := p.SignUp(ctx, "Ada@Example.com", "correct-horse")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if grant.Account.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %s", grant.Account.Email)
	}
	if grant.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	signedIn, err := p.SignInWithPassword(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if signedIn.Account.ID != grant.Account.ID {
		t.Fatalf("expected account %s, got %s", grant.Account.ID, signedIn.Account.ID)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "ada@example.com", "correct-horse"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := p.SignInWithPassword(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "ada@example.com", "correct-horse"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := p.SignUp(ctx, "ada@example.com", "other-password"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignOutInvalidatesToken(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	grant, err := p.SignUp(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if _, err := p.GetSession(ctx, grant.AccessToken); err != nil {
		t.Fatalf("get session before sign out: %v", err)
	}
	if err := p.SignOut(ctx, grant.AccessToken); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, err := p.GetSession(ctx, grant.AccessToken); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after sign out, got %v", err)
	}
}

func TestGetSessionRejectsGarbage(t *testing.T) {
	p := newTestProvider()
	if _, err := p.GetSession(context.Background(), "not-a-token"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
