package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
)

type fakeUserRepo struct {
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID id.UserID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeUserRepo) *Service {
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, jwtService, passthroughTxManager{}, DefaultServiceConfig())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	user, err := svc.Register(ctx, RegisterRequest{
		Email:    "Marie@Atelier.fr",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "marie@atelier.fr" {
		t.Errorf("email not normalized: %s", user.Email)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}
}

func TestRegister_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	tests := []struct {
		name string
		req  RegisterRequest
		code string
	}{
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "correct-horse"}, apperror.CodeValidation},
		{"short password", RegisterRequest{Email: "a@b.fr", Password: "short"}, apperror.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			if !apperror.IsCode(err, tt.code) {
				t.Errorf("Register() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	req := RegisterRequest{Email: "marie@atelier.fr", Password: "correct-horse"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	_, err := svc.Register(ctx, req)
	if !apperror.IsCode(err, apperror.CodeDuplicate) {
		t.Errorf("Register() error = %v, want DUPLICATE_ENTRY", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(ctx, RegisterRequest{Email: "marie@atelier.fr", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, user, err := svc.Login(ctx, Credentials{Email: "marie@atelier.fr", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token.AccessToken == "" {
		t.Error("empty access token")
	}
	if token.TokenType != "Bearer" {
		t.Errorf("token type = %s, want Bearer", token.TokenType)
	}
	if user.LastLoginAt == nil {
		t.Error("last login not recorded")
	}

	uc, err := svc.jwtService.ValidateToken(token.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if uc.UserID != user.ID.String() {
		t.Errorf("token user = %s, want %s", uc.UserID, user.ID)
	}
	if uc.Email != "marie@atelier.fr" {
		t.Errorf("token email = %s", uc.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(ctx, RegisterRequest{Email: "marie@atelier.fr", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, err := svc.Login(ctx, Credentials{Email: "marie@atelier.fr", Password: "wrong"})
	if !apperror.IsCode(err, apperror.CodeUnauthorized) {
		t.Errorf("Login() error = %v, want UNAUTHORIZED", err)
	}
	if repo.byEmail["marie@atelier.fr"].FailedLoginAttempts != 1 {
		t.Error("failed attempt not recorded")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeUserRepo())

	_, _, err := svc.Login(ctx, Credentials{Email: "ghost@atelier.fr", Password: "whatever"})
	if !apperror.IsCode(err, apperror.CodeUnauthorized) {
		t.Errorf("Login() error = %v, want UNAUTHORIZED", err)
	}
}

func TestLogin_LockoutAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(ctx, RegisterRequest{Email: "marie@atelier.fr", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	for i := 0; i < svc.config.MaxLoginAttempts; i++ {
		_, _, _ = svc.Login(ctx, Credentials{Email: "marie@atelier.fr", Password: "wrong"})
	}

	// Even the right password is refused while locked.
	_, _, err := svc.Login(ctx, Credentials{Email: "marie@atelier.fr", Password: "correct-horse"})
	if !apperror.IsCode(err, apperror.CodeForbidden) {
		t.Errorf("Login() error = %v, want FORBIDDEN", err)
	}
}

func TestLogin_SuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(ctx, RegisterRequest{Email: "marie@atelier.fr", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, _, _ = svc.Login(ctx, Credentials{Email: "marie@atelier.fr", Password: "wrong"})

	if _, _, err := svc.Login(ctx, Credentials{Email: "marie@atelier.fr", Password: "correct-horse"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if repo.byEmail["marie@atelier.fr"].FailedLoginAttempts != 0 {
		t.Error("failed attempts not reset after successful login")
	}
}

func TestCanLogin_DisabledAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	u := NewUser("marie@atelier.fr", string(hash))
	u.IsActive = false

	if err := u.CanLogin(); !apperror.IsCode(err, apperror.CodeForbidden) {
		t.Errorf("CanLogin() error = %v, want FORBIDDEN", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(id.New(), "marie@atelier.fr", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestLockExpiry(t *testing.T) {
	u := NewUser("marie@atelier.fr", "hash")
	u.RecordFailedLogin(1, -time.Minute)

	if u.IsLocked() {
		t.Error("expired lock still reported as locked")
	}
}
