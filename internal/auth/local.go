package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobs-tracker/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL    = 24 * time.Hour
	accessTokenIssuer = "jobs-tracker"
	minPasswordLength = 6
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email address has not been confirmed")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Provider verifies primary access tokens.
type Provider interface {
	Verify(ctx context.Context, token string) (*PrimarySession, error)
}

// Accounts is the user storage LocalProvider needs. database.UserRepository implements it.
type Accounts interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByConfirmToken(ctx context.Context, token string) (*models.User, error)
	Confirm(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

// Mailer delivers the sign-up confirmation link to the address being claimed.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, confirmURL string) error
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// LocalProvider is the password account backend: sign up with email
// confirmation, sign in for a signed access token.
type LocalProvider struct {
	Users   Accounts
	Mailer  Mailer
	secret  []byte
	baseURL string
	now     func() time.Time
}

func NewLocalProvider(users Accounts, mailer Mailer, secret, baseURL string) *LocalProvider {
	return &LocalProvider{
		Users:   users,
		Mailer:  mailer,
		secret:  []byte(secret),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// ValidatePassword checks the new password against its confirmation.
func ValidatePassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// SignUp creates an unconfirmed account and mails the confirmation link. The
// link never goes back to the caller; only the mailbox owner can confirm.
func (p *LocalProvider) SignUp(ctx context.Context, email, password, confirm, name string) error {
	if p.Mailer == nil {
		return fmt.Errorf("no mailer configured for confirmation emails")
	}
	email = normalizeEmail(email)
	if err := ValidatePassword(password, confirm); err != nil {
		return err
	}

	if _, err := p.Users.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	token, err := randomToken()
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Provider:     "email",
		Password:     string(hash),
		ConfirmToken: token,
	}
	if err := p.Users.Create(ctx, user); err != nil {
		// A concurrent sign-up won the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}

	confirmURL := p.baseURL + "/auth/confirm?token=" + url.QueryEscape(token)
	if err := p.Mailer.SendConfirmation(ctx, email, confirmURL); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

func (p *LocalProvider) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	user, err := p.Users.FindByConfirmToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return p.Users.Confirm(ctx, user.ID, p.now())
}

// SignIn returns a signed access token. Unconfirmed accounts are refused.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (string, time.Duration, error) {
	user, err := p.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", 0, ErrInvalidCredentials
	}
	if user.ConfirmedAt == nil {
		return "", 0, ErrEmailNotConfirmed
	}

	now := p.now()
	claims := accessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    accessTokenIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, accessTokenTTL, nil
}

func (p *LocalProvider) Verify(ctx context.Context, token string) (*PrimarySession, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(accessTokenIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &PrimarySession{UserID: claims.Subject, Email: claims.Email}, nil
}

func (p *LocalProvider) UpdatePassword(ctx context.Context, userID, password, confirm string) error {
	if err := ValidatePassword(password, confirm); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return p.Users.UpdatePassword(ctx, userID, string(hash))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
