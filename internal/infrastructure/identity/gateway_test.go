package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

type memCredentialRepo struct {
	creds map[string]*Credential // keyed by id
	seq   int
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{creds: make(map[string]*Credential)}
}

func (r *memCredentialRepo) Create(_ context.Context, c *Credential) (string, error) {
	for _, existing := range r.creds {
		if existing.Email == c.Email {
			return "", domain.ErrEmailInUse
		}
	}
	r.seq++
	id := fmt.Sprintf("cred_%d", r.seq)
	clone := *c
	clone.ID = id
	r.creds[id] = &clone
	return id, nil
}

func (r *memCredentialRepo) FindByEmail(_ context.Context, email string) (*Credential, error) {
	for _, c := range r.creds {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memCredentialRepo) FindByID(_ context.Context, id string) (*Credential, error) {
	c, ok := r.creds[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCredentialRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	c, ok := r.creds[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	c.PasswordHash = passwordHash
	return nil
}

type memTokenStore struct {
	tokens map[string]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]string)}
}

func (s *memTokenStore) Save(_ context.Context, token, principalID string, _ time.Duration) error {
	s.tokens[token] = principalID
	return nil
}

func (s *memTokenStore) Consume(_ context.Context, token string) (string, error) {
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(s.tokens, token)
	return id, nil
}

type recordingMailer struct {
	resetLinks []string
}

func (m *recordingMailer) SendCredentialReset(_ context.Context, _, resetURL string) error {
	m.resetLinks = append(m.resetLinks, resetURL)
	return nil
}

func (m *recordingMailer) SendContact(_ context.Context, _ ports.ContactMessage) error {
	return nil
}

func newTestGateway() (*Gateway, *memCredentialRepo, *memTokenStore, *recordingMailer) {
	creds := newMemCredentialRepo()
	tokens := newMemTokenStore()
	mailer := &recordingMailer{}
	g := NewGateway(creds, tokens, mailer, "test-secret", "https://blog.example", time.Hour, zerolog.Nop())
	return g, creds, tokens, mailer
}

func TestGateway_SignInRoundTrip(t *testing.T) {
	g, _, _, _ := newTestGateway()
	ctx := context.Background()

	principal, err := g.CreatePrincipal(ctx, "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("CreatePrincipal returned error: %v", err)
	}

	session, err := g.SignIn(ctx, "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if session.Principal.ID != principal.ID {
		t.Fatalf("session principal mismatch: %+v", session.Principal)
	}

	verified, err := g.VerifyToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if verified.ID != principal.ID || verified.Email != "ana@example.com" {
		t.Fatalf("verified principal mismatch: %+v", verified)
	}
}

func TestGateway_SignIn_WrongPassword(t *testing.T) {
	g, _, _, _ := newTestGateway()
	ctx := context.Background()
	if _, err := g.CreatePrincipal(ctx, "ana@example.com", "secret"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := g.SignIn(ctx, "ana@example.com", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := g.SignIn(ctx, "ghost@example.com", "secret"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGateway_CreatePrincipal_Rejections(t *testing.T) {
	g, _, _, _ := newTestGateway()
	ctx := context.Background()

	if _, err := g.CreatePrincipal(ctx, "not-an-email", "pw"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := g.CreatePrincipal(ctx, "ana@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := g.CreatePrincipal(ctx, "ana@example.com", "pw"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := g.CreatePrincipal(ctx, "ana@example.com", "pw"); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestGateway_VerifyToken_Garbage(t *testing.T) {
	g, _, _, _ := newTestGateway()
	if _, err := g.VerifyToken(context.Background(), "not.a.token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// A token signed with a different secret must not verify.
func TestGateway_VerifyToken_WrongSecret(t *testing.T) {
	g, _, _, _ := newTestGateway()
	ctx := context.Background()
	if _, err := g.CreatePrincipal(ctx, "ana@example.com", "secret"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	session, err := g.SignIn(ctx, "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}

	other := NewGateway(newMemCredentialRepo(), newMemTokenStore(), &recordingMailer{}, "other-secret", "https://blog.example", time.Hour, zerolog.Nop())
	if _, err := other.VerifyToken(ctx, session.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestGateway_CredentialReset_SingleUse(t *testing.T) {
	g, _, tokens, mailer := newTestGateway()
	ctx := context.Background()
	if _, err := g.CreatePrincipal(ctx, "ana@example.com", "old-pw"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := g.SendCredentialResetEmail(ctx, "ana@example.com", "https://blog.example/login"); err != nil {
		t.Fatalf("SendCredentialResetEmail returned error: %v", err)
	}
	if len(mailer.resetLinks) != 1 {
		t.Fatalf("reset email not sent")
	}
	link := mailer.resetLinks[0]
	if !strings.Contains(link, "/reset?token=") || !strings.Contains(link, "continue=") {
		t.Fatalf("unexpected reset link: %s", link)
	}

	// Pull the raw token back out of the store; the link embeds the same one.
	var token string
	for tok := range tokens.tokens {
		token = tok
	}
	if token == "" || !strings.Contains(link, token) {
		t.Fatalf("link does not carry the saved token")
	}

	if err := g.ConfirmCredentialReset(ctx, token, "new-pw"); err != nil {
		t.Fatalf("ConfirmCredentialReset returned error: %v", err)
	}
	if _, err := g.SignIn(ctx, "ana@example.com", "new-pw"); err != nil {
		t.Fatalf("sign-in with new password failed: %v", err)
	}
	if _, err := g.SignIn(ctx, "ana@example.com", "old-pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}

	// Second consumption of the same token fails.
	if err := g.ConfirmCredentialReset(ctx, token, "another-pw"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}
}

func TestGateway_SendCredentialResetEmail_UnknownAddress(t *testing.T) {
	g, _, _, _ := newTestGateway()
	if err := g.SendCredentialResetEmail(context.Background(), "ghost@example.com", ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSecondaryContext_Isolation(t *testing.T) {
	g, _, _, _ := newTestGateway()
	ctx := context.Background()

	sc, err := g.NewSecondaryContext(ctx)
	if err != nil {
		t.Fatalf("NewSecondaryContext returned error: %v", err)
	}

	principal, err := sc.CreatePrincipal(ctx, "nueva@example.com", "placeholder")
	if err != nil {
		t.Fatalf("CreatePrincipal returned error: %v", err)
	}

	inner, ok := sc.(*secondaryContext)
	if !ok {
		t.Fatalf("unexpected AuthContext implementation: %T", sc)
	}
	if cur := inner.Current(); cur == nil || cur.ID != principal.ID {
		t.Fatalf("secondary context should hold the new principal's session")
	}

	if err := sc.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if inner.Current() != nil {
		t.Fatalf("closed context still holds a session")
	}
	// Idempotent close.
	if err := sc.Close(ctx); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	// A closed context refuses further work.
	if _, err := sc.CreatePrincipal(ctx, "otra@example.com", "pw"); err == nil {
		t.Fatalf("closed context accepted CreatePrincipal")
	}

	// The account created through the secondary context is real.
	if _, err := g.SignIn(ctx, "nueva@example.com", "placeholder"); err != nil {
		t.Fatalf("account created via secondary context cannot sign in: %v", err)
	}
}
