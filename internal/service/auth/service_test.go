package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	created     *domain.User
	createErr   error
	lastCreated domain.User
	byEmail     *domain.User
	byEmailErr  error
	byID        *domain.User
	byIDErr     error
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	s.lastCreated = u
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := u
	out.ID = "u1"
	return &out, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return s.byID, s.byIDErr
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.byEmail, s.byEmailErr
}

type stubTokenRepo struct {
	tokens    map[string]tokenrepo.Token
	createErr error
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (s *stubTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *stubTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tokens, token)
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func TestSignupNormalizesEmailAndHashesPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := New(repo, newStubTokenRepo())

	u, err := svc.Signup(context.Background(), SignupInput{
		Email:       "  Jordan@Example.COM ",
		Password:    "Sup3rsecret",
		DisplayName: " Jordan ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "jordan@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if repo.lastCreated.PasswordHash == "Sup3rsecret" || repo.lastCreated.PasswordHash == "" {
		t.Fatalf("expected password hashed before storage")
	}
	if repo.lastCreated.DisplayName != "Jordan" {
		t.Fatalf("expected trimmed display name, got %q", repo.lastCreated.DisplayName)
	}
}

func TestSignupPasswordRules(t *testing.T) {
	svc := New(&stubUserRepo{}, newStubTokenRepo())

	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		_, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.com", Password: password})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("password %q: expected ErrValidation, got %v", password, err)
		}
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	repo := &stubUserRepo{byEmail: &domain.User{ID: "u1", Email: "a@b.com", PasswordHash: hash(t, "Sup3rsecret")}}
	tokens := newStubTokenRepo()
	svc := New(repo, tokens)

	u, access, refresh, err := svc.Login(context.Background(), "a@b.com", "Sup3rsecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("expected user u1, got %s", u.ID)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatalf("expected two distinct tokens, got %q / %q", access, refresh)
	}
	if len(tokens.tokens) != 2 {
		t.Fatalf("expected both tokens persisted, got %d", len(tokens.tokens))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubUserRepo{byEmail: &domain.User{ID: "u1", PasswordHash: hash(t, "Sup3rsecret")}}
	svc := New(repo, newStubTokenRepo())

	if _, _, _, err := svc.Login(context.Background(), "a@b.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &stubUserRepo{byEmailErr: domain.ErrNotFound}
	svc := New(repo, newStubTokenRepo())

	if _, _, _, err := svc.Login(context.Background(), "a@b.com", "Sup3rsecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLookupByToken(t *testing.T) {
	repo := &stubUserRepo{
		byEmail: &domain.User{ID: "u1", PasswordHash: hash(t, "Sup3rsecret")},
		byID:    &domain.User{ID: "u1", Email: "a@b.com"},
	}
	svc := New(repo, newStubTokenRepo())

	_, access, refresh, err := svc.Login(context.Background(), "a@b.com", "Sup3rsecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := svc.LookupByToken(context.Background(), access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("expected user u1, got %s", u.ID)
	}

	// Refresh tokens are not accepted as access tokens.
	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown token, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := &stubUserRepo{
		byEmail: &domain.User{ID: "u1", PasswordHash: hash(t, "Sup3rsecret")},
		byID:    &domain.User{ID: "u1"},
	}
	tokens := newStubTokenRepo()
	svc := New(repo, tokens)

	_, access, _, err := svc.Login(context.Background(), "a@b.com", "Sup3rsecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected revoked token rejected, got %v", err)
	}

	// Revoking again is a no-op.
	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("expected repeated logout to succeed, got %v", err)
	}
}

func TestExpiredTokenIsDeleted(t *testing.T) {
	tokens := newStubTokenRepo()
	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    "u1",
		Kind:      "access",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := New(&stubUserRepo{byID: &domain.User{ID: "u1"}}, tokens)

	if _, err := svc.LookupByToken(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatalf("expected expired token removed")
	}
}
