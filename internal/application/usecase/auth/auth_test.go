package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
)

type memoryUsers struct {
	byEmail map[string]*entity.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*entity.User)}
}

func (m *memoryUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domainerror.ErrEmailAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (m *memoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memoryUsers) Count(context.Context) (int64, error) {
	return int64(len(m.byEmail)), nil
}

// plainPasswords stores passwords with a prefix so tests can check hashing happened.
type plainPasswords struct{}

func (plainPasswords) HashPassword(p string) (string, error) { return "hashed:" + p, nil }

func (plainPasswords) VerifyPassword(hash, p string) error {
	if hash != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(p string) error {
	if len(p) < 8 {
		return errors.New("too short")
	}
	return nil
}

type fakeTokens struct {
	revoked []string
}

func (f *fakeTokens) IssueAccessToken(_ context.Context, u *entity.User) (*adapter.IssuedToken, error) {
	return &adapter.IssuedToken{Token: "token-" + u.Email, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeTokens) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokens) RevokeAccessToken(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

func TestRegisterUser(t *testing.T) {
	users := newMemoryUsers()
	uc := NewRegisterUserUseCase(users, plainPasswords{})
	ctx := context.Background()

	first, err := uc.Execute(ctx, RegisterUserInput{Email: "Owner@Example.com", Name: "Owner", Password: "password123", Role: "sales"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.User.Role != entity.RoleAdmin {
		t.Errorf("first user role = %s, want admin", first.User.Role)
	}
	if first.User.Email != "owner@example.com" {
		t.Errorf("email = %s, want lowercased", first.User.Email)
	}
	if first.User.PasswordHash != "hashed:password123" {
		t.Errorf("password was not hashed")
	}

	second, err := uc.Execute(ctx, RegisterUserInput{Email: "sales@example.com", Name: "Sales", Password: "password123", Role: "sales"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.User.Role != entity.RoleSales {
		t.Errorf("second user role = %s, want sales", second.User.Role)
	}

	third, err := uc.Execute(ctx, RegisterUserInput{Email: "client@example.com", Name: "Client", Password: "password123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.User.Role != entity.RoleCustomer {
		t.Errorf("default role = %s, want customer", third.User.Role)
	}

	tests := []struct {
		name     string
		input    RegisterUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{name: "missing name", input: RegisterUserInput{Email: "a@example.com", Password: "password123"}, wantCode: domainerror.ErrCodeMissingFields},
		{name: "invalid email", input: RegisterUserInput{Email: "nope", Name: "A", Password: "password123"}, wantCode: domainerror.ErrCodeInvalidEmail},
		{name: "weak password", input: RegisterUserInput{Email: "a@example.com", Name: "A", Password: "short"}, wantCode: domainerror.ErrCodeWeakPassword},
		{name: "unknown role", input: RegisterUserInput{Email: "a@example.com", Name: "A", Password: "password123", Role: "root"}, wantCode: domainerror.ErrCodeInvalidRole},
		{name: "taken email", input: RegisterUserInput{Email: "sales@example.com", Name: "A", Password: "password123"}, wantCode: domainerror.ErrCodeEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			var authErr *domainerror.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if authErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", authErr.Code, tt.wantCode)
			}
		})
	}
}

func TestLoginAndLogout(t *testing.T) {
	users := newMemoryUsers()
	tokens := &fakeTokens{}
	ctx := context.Background()

	if _, err := NewRegisterUserUseCase(users, plainPasswords{}).Execute(ctx, RegisterUserInput{
		Email: "admin@example.com", Name: "Admin", Password: "password123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	login := NewLoginUserUseCase(users, plainPasswords{}, tokens)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "ADMIN@example.com", password: "password123"},
		{name: "wrong password", email: "admin@example.com", password: "password999", wantErr: true},
		{name: "unknown email", email: "ghost@example.com", password: "password123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := login.Execute(ctx, LoginUserInput{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidCredentials) {
					t.Fatalf("expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.AccessToken != "token-admin@example.com" {
				t.Errorf("token = %s", out.AccessToken)
			}
		})
	}

	if _, err := NewLogoutUserUseCase(tokens).Execute(ctx, LogoutUserInput{AccessToken: "token-admin@example.com"}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(tokens.revoked) != 1 {
		t.Errorf("revoked = %v, want one token", tokens.revoked)
	}
}

func TestGetCurrentUser(t *testing.T) {
	users := newMemoryUsers()
	admin := entity.NewUser("admin@example.com", "Admin", "x", entity.RoleAdmin)
	users.byEmail[admin.Email] = admin

	uc := NewGetCurrentUserUseCase(users)
	got, err := uc.Execute(context.Background(), admin.ID)
	if err != nil || got.ID != admin.ID {
		t.Fatalf("got %v, %v", got, err)
	}

	_, err = uc.Execute(context.Background(), uuid.New())
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeUserNotFound {
		t.Errorf("expected user not found AuthError, got %v", err)
	}
}
