package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/apexgym/members/internal/domain"
	"github.com/apexgym/members/internal/repository/sqlite"
	"github.com/apexgym/members/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4), db
}

func registerInput(email string) service.RegisterInput {
	return service.RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		DOB:       time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
		Address:   "12 Long Street City",
		Telephone: "012 34567",
		Email:     email,
		Medical:   "none",
		Password:  "secretpass",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerInput("alice@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secretpass" {
		t.Fatal("expected password to be stored as a hash")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registerInput("dup@example.com")); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := auth.Register(ctx, registerInput("dup@example.com"))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// No second record was created.
	users, err := db.Users().ListByRole(ctx, domain.RoleUser)
	if err != nil {
		t.Fatalf("ListByRole: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, registerInput("login@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := auth.Login(ctx, "login@example.com", "secretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected stored role, got %s", user.Role)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "nobody@example.com", "secretpass")
	if !errors.Is(err, domain.ErrEmailNotRegistered) {
		t.Fatalf("expected ErrEmailNotRegistered, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatal("expected the failure to match ErrUnauthorized")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registerInput("wrongpw@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := auth.Login(ctx, "wrongpw@example.com", "notthepassword")
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthService_Token_RoundTrip(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerInput("jwt@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth.MintToken(user)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	userID, role, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}
	if role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", role)
	}
}

func TestAuthService_Token_Tampered(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerInput("tamper@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth.MintToken(user)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	tampered := token[:len(token)-5] + "XXXXX"
	if _, _, err := auth.ValidateToken(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}

	if _, _, err := auth.ValidateToken("not-a-valid-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestAuthService_Token_WrongSecret(t *testing.T) {
	auth1, db := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth1.Register(ctx, registerInput("secret@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth1.MintToken(user)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	auth2 := service.NewAuthService(db.Users(), "a-completely-different-secret", 4)
	if _, _, err := auth2.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestAuthService_UpdateSettings_OverwritesEverything(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerInput("settings@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := auth.UpdateSettings(ctx, user.ID, service.SettingsInput{
		FirstName: "Alicia",
		LastName:  "Smythe",
		Address:   "99 Other Road",
		Telephone: "099 99999",
		Email:     "settings@example.com",
		Medical:   "asthma",
		Password:  "brandnewpass",
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.FirstName != "Alicia" || updated.Medical != "asthma" {
		t.Fatalf("fields not overwritten: %+v", updated)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("role must not change on settings update, got %s", updated.Role)
	}

	// The password was re-hashed: only the new one logs in.
	if _, err := auth.Login(ctx, "settings@example.com", "secretpass"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, err := auth.Login(ctx, "settings@example.com", "brandnewpass"); err != nil {
		t.Fatalf("expected new password accepted, got %v", err)
	}
}

func TestAuthService_UpdateSettings_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, registerInput("first@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := auth.Register(ctx, registerInput("second@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = auth.UpdateSettings(ctx, second.ID, service.SettingsInput{
		FirstName: "Bob", LastName: "Jones", Address: "1 Road",
		Telephone: "012 34567", Email: "first@example.com",
		Medical: "none", Password: "secretpass",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	if err := auth.EnsureAdmin(ctx, "admin@example.com", "adminpass1"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	// Idempotent.
	if err := auth.EnsureAdmin(ctx, "admin@example.com", "adminpass1"); err != nil {
		t.Fatalf("second EnsureAdmin: %v", err)
	}

	admin, err := db.Users().GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", admin.Role)
	}
}
