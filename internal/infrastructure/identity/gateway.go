// Package identity implements the identity gateway over MongoDB-backed
// credentials, bcrypt hashing, HS256 session tokens, and a TTL token store
// for the credential-reset flow.
package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

const defaultResetTTL = time.Hour

// Credential is a stored login credential. The document id doubles as the
// principal id for the lifetime of the account.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CredentialRepository abstracts credential persistence.
type CredentialRepository interface {
	// Create inserts a credential and returns its id. Returns
	// domain.ErrEmailInUse when the email is already registered.
	Create(ctx context.Context, c *Credential) (string, error)
	// FindByEmail returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	FindByID(ctx context.Context, id string) (*Credential, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ResetTokenStore holds single-use credential-reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token, principalID string, ttl time.Duration) error
	// Consume returns the principal id for the token and invalidates it.
	// Returns domain.ErrInvalidToken for unknown or expired tokens.
	Consume(ctx context.Context, token string) (string, error)
}

// Gateway implements ports.IdentityGateway.
type Gateway struct {
	creds     CredentialRepository
	tokens    ResetTokenStore
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	resetTTL  time.Duration
	baseURL   string
	log       zerolog.Logger
}

// NewGateway builds the gateway. baseURL is the public address of the login
// surface that reset links point back to.
func NewGateway(creds CredentialRepository, tokens ResetTokenStore, mailer ports.Mailer, jwtSecret, baseURL string, tokenTTL time.Duration, log zerolog.Logger) *Gateway {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Gateway{
		creds:     creds,
		tokens:    tokens,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		resetTTL:  defaultResetTTL,
		baseURL:   baseURL,
		log:       log,
	}
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := g.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{ID: cred.ID, Email: cred.Email}
	token, err := g.generateToken(principal)
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, Principal: principal}, nil
}

func (g *Gateway) CreatePrincipal(ctx context.Context, email, password string) (*domain.Principal, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id, err := g.creds.Create(ctx, &Credential{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return &domain.Principal{ID: id, Email: email}, nil
}

// VerifyToken validates a session token and returns the principal it was
// issued to.
func (g *Gateway) VerifyToken(_ context.Context, token string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(g.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Principal{ID: sub, Email: email}, nil
}

// SendCredentialResetEmail issues a single-use token and mails the setup
// link. returnURL, when non-empty, is carried as the continue parameter so
// the reset surface can send the user back to the right login page.
func (g *Gateway) SendCredentialResetEmail(ctx context.Context, email, returnURL string) error {
	cred, err := g.creds.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	if err := g.tokens.Save(ctx, token, cred.ID, g.resetTTL); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset?token=%s", g.baseURL, token)
	if returnURL != "" {
		link += "&continue=" + url.QueryEscape(returnURL)
	}
	if err := g.mailer.SendCredentialReset(ctx, email, link); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	g.log.Info().Str("principal_id", cred.ID).Msg("credential reset email sent")
	return nil
}

func (g *Gateway) ConfirmCredentialReset(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	principalID, err := g.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := g.creds.UpdatePassword(ctx, principalID, string(hash)); err != nil {
		return fmt.Errorf("update credential: %w", err)
	}

	g.log.Info().Str("principal_id", principalID).Msg("credential reset confirmed")
	return nil
}

// NewSecondaryContext returns an isolated auth context. Credentials created
// through it sign in only that context, never the caller's primary session.
func (g *Gateway) NewSecondaryContext(_ context.Context) (ports.AuthContext, error) {
	return &secondaryContext{gateway: g}, nil
}

func (g *Gateway) generateToken(p domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":   p.ID,
		"email": p.Email,
		"exp":   time.Now().Add(g.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(g.jwtSecret))
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.New("identity: token entropy unavailable")
	}
	return hex.EncodeToString(b), nil
}
