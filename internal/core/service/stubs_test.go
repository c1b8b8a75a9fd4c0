package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// --- profile store stub ---

type stubProfileStore struct {
	profiles map[string]*domain.Profile
	getErr   error
	setErr   error
}

func newStubProfileStore() *stubProfileStore {
	return &stubProfileStore{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (s *stubProfileStore) Get(_ context.Context, id string) (*domain.Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (s *stubProfileStore) Set(_ context.Context, p *domain.Profile) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.profiles[p.ID] = cloneProfile(p)
	return nil
}

func (s *stubProfileStore) SetRole(_ context.Context, id, role string) error {
	p, ok := s.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Role = role
	return nil
}

func (s *stubProfileStore) List(_ context.Context) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (s *stubProfileStore) ListByRole(_ context.Context, role string) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range s.profiles {
		if p.Role == role {
			out = append(out, cloneProfile(p))
		}
	}
	return out, nil
}

// --- article repository stub ---

type stubArticleRepo struct {
	articles map[string]*domain.Article
	seq      int
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[string]*domain.Article)}
}

func cloneArticle(a *domain.Article) *domain.Article {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (string, error) {
	r.seq++
	id := fmt.Sprintf("art_%d", r.seq)
	copy := cloneArticle(a)
	copy.ID = id
	r.articles[id] = copy
	return id, nil
}

func (r *stubArticleRepo) Get(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (r *stubArticleRepo) Update(_ context.Context, a *domain.Article) error {
	if _, ok := r.articles[a.ID]; !ok {
		return domain.ErrArticleNotFound
	}
	r.articles[a.ID] = cloneArticle(a)
	return nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *stubArticleRepo) List(_ context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, error) {
	var out []*domain.Article
	for _, a := range r.articles {
		if filter.OwnerID != "" && a.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		out = append(out, cloneArticle(a))
	}
	return out, nil
}

// --- role resolver stub ---

type stubResolver struct {
	roles map[string]domain.Role
}

func newStubResolver() *stubResolver {
	return &stubResolver{roles: make(map[string]domain.Role)}
}

func (s *stubResolver) ResolveRole(_ context.Context, principalID string) domain.Role {
	if principalID == "" {
		return domain.RoleUnauthenticated
	}
	if role, ok := s.roles[principalID]; ok {
		return role
	}
	return domain.RoleUser
}

// --- identity gateway stub ---

// stubSecondary records what happened inside one isolated auth context so
// tests can assert nothing leaked out of it.
type stubSecondary struct {
	gateway *stubGateway

	mu      sync.Mutex
	current *domain.Principal
	closed  bool
}

func (c *stubSecondary) CreatePrincipal(ctx context.Context, email, password string) (*domain.Principal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, domain.ErrInvalidToken
	}
	p, err := c.gateway.CreatePrincipal(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.current = p
	return p, nil
}

func (c *stubSecondary) Close(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.closed = true
	return nil
}

func (c *stubSecondary) Current() *domain.Principal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

type stubGateway struct {
	principals map[string]*domain.Principal // keyed by email
	passwords  map[string]string            // keyed by email
	seq        int

	// primarySession is the caller the gateway considers signed in on the
	// primary context; provisioning must never change it.
	primarySession *domain.Principal
	secondaries    []*stubSecondary

	resetEmails  []string
	sendResetErr error
	createErr    error
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		principals: make(map[string]*domain.Principal),
		passwords:  make(map[string]string),
	}
}

func (g *stubGateway) SignIn(_ context.Context, email, password string) (*ports.Session, error) {
	p, ok := g.principals[email]
	if !ok || g.passwords[email] != password {
		return nil, domain.ErrInvalidCredentials
	}
	g.primarySession = p
	return &ports.Session{Token: "token-" + p.ID, Principal: *p}, nil
}

func (g *stubGateway) CreatePrincipal(_ context.Context, email, password string) (*domain.Principal, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	if _, exists := g.principals[email]; exists {
		return nil, domain.ErrEmailInUse
	}
	g.seq++
	p := &domain.Principal{ID: fmt.Sprintf("principal_%d", g.seq), Email: email}
	g.principals[email] = p
	g.passwords[email] = password
	return p, nil
}

func (g *stubGateway) VerifyToken(_ context.Context, token string) (*domain.Principal, error) {
	for _, p := range g.principals {
		if token == "token-"+p.ID {
			return p, nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (g *stubGateway) SendCredentialResetEmail(_ context.Context, email, _ string) error {
	if g.sendResetErr != nil {
		return g.sendResetErr
	}
	if _, ok := g.principals[email]; !ok {
		return domain.ErrUserNotFound
	}
	g.resetEmails = append(g.resetEmails, email)
	return nil
}

func (g *stubGateway) ConfirmCredentialReset(_ context.Context, _, _ string) error {
	return nil
}

func (g *stubGateway) NewSecondaryContext(_ context.Context) (ports.AuthContext, error) {
	sc := &stubSecondary{gateway: g}
	g.secondaries = append(g.secondaries, sc)
	return sc, nil
}
