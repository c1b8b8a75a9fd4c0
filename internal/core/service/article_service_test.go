package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func newArticleFixture() (ports.ArticleService, *stubArticleRepo, *stubProfileStore, *stubResolver) {
	repo := newStubArticleRepo()
	profiles := newStubProfileStore()
	resolver := newStubResolver()
	svc := NewArticleService(repo, profiles, resolver, zerolog.Nop())
	return svc, repo, profiles, resolver
}

func TestArticleService_Create_Success(t *testing.T) {
	svc, repo, profiles, resolver := newArticleFixture()
	resolver.roles["w1"] = domain.RoleWriter
	profiles.profiles["w1"] = &domain.Profile{ID: "w1", DisplayName: "Ana Escritora"}

	caller := domain.Principal{ID: "w1", Email: "ana@example.com"}
	article, err := svc.Create(context.Background(), caller, ports.CreateArticleInput{
		Title:    "El otoño",
		Category: "poesia",
		Content:  "Versos...",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if article.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if article.OwnerID != "w1" {
		t.Fatalf("owner not stamped from caller: %q", article.OwnerID)
	}
	if article.AuthorName != "Ana Escritora" {
		t.Fatalf("author snapshot should come from the profile, got %q", article.AuthorName)
	}
	if article.AuthorEmail != "ana@example.com" {
		t.Fatalf("author email snapshot missing: %q", article.AuthorEmail)
	}
	if _, err := repo.Get(context.Background(), article.ID); err != nil {
		t.Fatalf("article not persisted: %v", err)
	}
}

func TestArticleService_Create_AuthorFallsBackToEmail(t *testing.T) {
	svc, _, _, resolver := newArticleFixture()
	resolver.roles["w1"] = domain.RoleWriter

	article, err := svc.Create(context.Background(), domain.Principal{ID: "w1", Email: "ana@example.com"}, ports.CreateArticleInput{
		Title:    "Sin perfil",
		Category: "narrativa",
		Content:  "...",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if article.AuthorName != "ana@example.com" {
		t.Fatalf("expected email fallback, got %q", article.AuthorName)
	}
}

func TestArticleService_Create_RequiresWriterRole(t *testing.T) {
	svc, repo, _, _ := newArticleFixture()

	_, err := svc.Create(context.Background(), domain.Principal{ID: "u1"}, ports.CreateArticleInput{
		Title:    "No deberia",
		Category: "poesia",
		Content:  "...",
	})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(repo.articles) != 0 {
		t.Fatalf("denied create must not persist anything")
	}
}

func TestArticleService_Create_InvalidCategory(t *testing.T) {
	svc, _, _, resolver := newArticleFixture()
	resolver.roles["w1"] = domain.RoleWriter

	_, err := svc.Create(context.Background(), domain.Principal{ID: "w1"}, ports.CreateArticleInput{
		Title:    "Mal",
		Category: "gastronomia",
		Content:  "...",
	})
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestArticleService_ListOwn_FiltersAndSorts(t *testing.T) {
	svc, repo, _, _ := newArticleFixture()
	seed := []*domain.Article{
		{Title: "zarza", OwnerID: "w1", Category: domain.CategoryPoesia},
		{Title: "Abedul", OwnerID: "w1", Category: domain.CategoryNarrativa},
		{Title: "mimbre", OwnerID: "w2", Category: domain.CategoryPoesia},
		{Title: "brezo", OwnerID: "w1", Category: domain.CategoryCultura},
	}
	for _, a := range seed {
		if _, err := repo.Create(context.Background(), a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := svc.ListOwn(context.Background(), "w1")
	if err != nil {
		t.Fatalf("ListOwn returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 own articles, got %d", len(got))
	}
	// Title ascending, case-insensitive.
	want := []string{"Abedul", "brezo", "zarza"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestArticleService_ListOwn_RequiresCaller(t *testing.T) {
	svc, _, _, _ := newArticleFixture()
	if _, err := svc.ListOwn(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestArticleService_ListAll_AdminOnly(t *testing.T) {
	svc, repo, _, resolver := newArticleFixture()
	resolver.roles["boss"] = domain.RoleAdmin
	resolver.roles["w1"] = domain.RoleWriter
	for _, title := range []string{"beta", "Alfa"} {
		if _, err := repo.Create(context.Background(), &domain.Article{Title: title, OwnerID: "w1"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if _, err := svc.ListAll(context.Background(), "w1"); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("writer should be denied, got %v", err)
	}

	got, err := svc.ListAll(context.Background(), "boss")
	if err != nil {
		t.Fatalf("admin ListAll returned error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Alfa" {
		t.Fatalf("unexpected admin listing: %+v", got)
	}
}

func TestArticleService_Update_OwnerWriter(t *testing.T) {
	svc, repo, _, resolver := newArticleFixture()
	resolver.roles["w1"] = domain.RoleWriter
	id, _ := repo.Create(context.Background(), &domain.Article{Title: "antes", Category: domain.CategoryPoesia, Content: "x", OwnerID: "w1"})

	updated, err := svc.Update(context.Background(), "w1", id, ports.UpdateArticleInput{
		Title:    strPtr("después"),
		Category: strPtr("cultura"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "después" || updated.Category != domain.CategoryCultura {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Content != "x" {
		t.Fatalf("nil fields must stay unchanged")
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not refreshed")
	}

	stored, _ := repo.Get(context.Background(), id)
	if stored.Title != "después" {
		t.Fatalf("update not persisted")
	}
}

// An owner without the writer role may not mutate, and a denied mutation
// leaves the stored article untouched.
func TestArticleService_Update_DeniedLeavesDataIntact(t *testing.T) {
	svc, repo, _, _ := newArticleFixture()
	id, _ := repo.Create(context.Background(), &domain.Article{Title: "original", Category: domain.CategoryPoesia, OwnerID: "u1"})

	_, err := svc.Update(context.Background(), "u1", id, ports.UpdateArticleInput{Title: strPtr("hackeado")})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	stored, _ := repo.Get(context.Background(), id)
	if stored.Title != "original" {
		t.Fatalf("denied update mutated the article")
	}
}

func TestArticleService_Remove(t *testing.T) {
	svc, repo, _, resolver := newArticleFixture()
	resolver.roles["w1"] = domain.RoleWriter
	resolver.roles["boss"] = domain.RoleAdmin
	own, _ := repo.Create(context.Background(), &domain.Article{Title: "mio", OwnerID: "w1"})
	foreign, _ := repo.Create(context.Background(), &domain.Article{Title: "ajeno", OwnerID: "w2"})

	// Writer removes its own article.
	if err := svc.Remove(context.Background(), "w1", own); err != nil {
		t.Fatalf("own removal failed: %v", err)
	}
	// Writer denied on someone else's; the article survives.
	if err := svc.Remove(context.Background(), "w1", foreign); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := repo.Get(context.Background(), foreign); err != nil {
		t.Fatalf("denied removal deleted the article")
	}
	// Admin removes anything.
	if err := svc.Remove(context.Background(), "boss", foreign); err != nil {
		t.Fatalf("admin removal failed: %v", err)
	}
}

func TestArticleService_Remove_Missing(t *testing.T) {
	svc, _, _, resolver := newArticleFixture()
	resolver.roles["w1"] = domain.RoleWriter
	if err := svc.Remove(context.Background(), "w1", "nope"); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleService_ListPublic_CategoryFilter(t *testing.T) {
	svc, repo, _, _ := newArticleFixture()
	if _, err := repo.Create(context.Background(), &domain.Article{Title: "p", Category: domain.CategoryPoesia, OwnerID: "w1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.Article{Title: "n", Category: domain.CategoryNarrativa, OwnerID: "w1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := svc.ListPublic(context.Background(), "poesia")
	if err != nil {
		t.Fatalf("ListPublic returned error: %v", err)
	}
	if len(got) != 1 || got[0].Category != domain.CategoryPoesia {
		t.Fatalf("category filter not applied: %+v", got)
	}

	if _, err := svc.ListPublic(context.Background(), "no-existe"); !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}
