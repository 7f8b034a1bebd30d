package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/apexgym/members/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthService handles member registration, login, settings updates, and
// JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// RegisterInput carries an already-validated signup payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	DOB       time.Time
	Address   string
	Telephone string
	Email     string
	Medical   string
	Password  string
}

// Register creates a new member account with role "user". The email
// uniqueness guarantee comes from the storage layer, so two concurrent
// registrations with the same address cannot both succeed.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DOB:          in.DOB,
		Address:      in.Address,
		Telephone:    in.Telephone,
		Email:        in.Email,
		Medical:      in.Medical,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the matching user. The two
// failure modes are reported distinctly; see ErrEmailNotRegistered and
// ErrPasswordMismatch.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrPasswordMismatch
	}

	return user, nil
}

// SettingsInput carries an already-validated settings payload.
type SettingsInput struct {
	FirstName string
	LastName  string
	Address   string
	Telephone string
	Email     string
	Medical   string
	Password  string
}

// UpdateSettings overwrites every mutable field of the user's record,
// including re-hashing the supplied password. There is no partial-update
// or keep-existing-password path. ID and role are never touched.
func (s *AuthService) UpdateSettings(ctx context.Context, userID int64, in SettingsInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Address = in.Address
	user.Telephone = in.Telephone
	user.Email = in.Email
	user.Medical = in.Medical
	user.PasswordHash = string(hash)

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// MintToken produces a signed session token embedding the user's identity
// and role. Signup and login both sign the user in through this.
func (s *AuthService) MintToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a session token, returning the user
// ID and role embedded at minting time. Any parse or signature failure
// maps to ErrUnauthorized; callers treat that as an anonymous request.
func (s *AuthService) ValidateToken(tokenString string) (int64, domain.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, "", domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, "", domain.ErrUnauthorized
	}

	roleClaim, _ := claims["role"].(string)
	role := domain.Role(roleClaim)
	if !role.Valid() {
		return 0, "", domain.ErrUnauthorized
	}

	return userID, role, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// EnsureAdmin creates the administrator account if it does not exist yet.
// Idempotent; signup can never produce an admin, so this is the only way
// one comes into being.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		FirstName:    "Site",
		LastName:     "Admin",
		DOB:          time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
		Address:      "1 Gym Street",
		Telephone:    "000 00000",
		Email:        email,
		Medical:      "none",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// Lost the race against another instance seeding the same account.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
