package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// PasswordProvider implements Provider over a credential repository. Access
// tokens are HS256 JWTs carrying a token version; bumping the version on
// sign-out invalidates every previously issued token.
type PasswordProvider struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
}

// NewPasswordProvider builds the production identity provider.
func NewPasswordProvider(repo Repository, secret []byte, ttl time.Duration) *PasswordProvider {
	return &PasswordProvider{repo: repo, secret: secret, ttl: ttl}
}

// SignInWithPassword verifies credentials and issues an access token.
func (p *PasswordProvider) SignInWithPassword(ctx context.Context, email, password string) (Grant, error) {
	user, err := p.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Grant{}, ErrInvalidCredentials
		}
		return Grant{}, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return Grant{}, ErrInvalidCredentials
	}
	return p.grant(user)
}

// SignUp registers a new account and signs it in.
func (p *PasswordProvider) SignUp(ctx context.Context, email, password string) (Grant, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return Grant{}, errors.New("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return Grant{}, errors.New("password must be at least 8 characters")
	}

	if _, err := p.repo.FindByEmail(ctx, email); err == nil {
		return Grant{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return Grant{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Grant{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Grant{}, ErrEmailTaken
		}
		return Grant{}, err
	}

	return p.grant(user)
}

// SignOut invalidates every token issued to the account behind accessToken.
func (p *PasswordProvider) SignOut(ctx context.Context, accessToken string) error {
	user, err := p.verify(ctx, accessToken)
	if err != nil {
		return err
	}
	return p.repo.UpdateTokenVersion(ctx, user.ID, user.TokenVersion+1)
}

// GetSession reports the account behind a still-valid access token.
func (p *PasswordProvider) GetSession(ctx context.Context, accessToken string) (Account, error) {
	user, err := p.verify(ctx, accessToken)
	if err != nil {
		return Account{}, err
	}
	return Account{ID: user.ID, Email: user.Email}, nil
}

func (p *PasswordProvider) grant(user User) (Grant, error) {
	now := time.Now()
	claims := map[string]any{
		"sub":   user.ID,
		"email": user.Email,
		"ver":   user.TokenVersion,
		"iat":   now.Unix(),
		"exp":   now.Add(p.ttl).Unix(),
	}
	token, err := signHS256(claims, p.secret)
	if err != nil {
		return Grant{}, err
	}
	return Grant{Account: Account{ID: user.ID, Email: user.Email}, AccessToken: token}, nil
}

func (p *PasswordProvider) verify(ctx context.Context, accessToken string) (User, error) {
	if accessToken == "" {
		return User{}, ErrNoSession
	}
	claims, err := parseAndVerifyHS256(accessToken, p.secret)
	if err != nil {
		return User{}, ErrNoSession
	}
	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() >= int64(exp) {
		return User{}, ErrNoSession
	}
	sub, _ := claims["sub"].(string)
	verFloat, _ := claims["ver"].(float64)

	user, err := p.repo.FindByID(ctx, sub)
	if err != nil {
		return User{}, ErrNoSession
	}
	if user.TokenVersion != int(verFloat) {
		return User{}, ErrNoSession
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
