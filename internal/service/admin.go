package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apexgym/members/internal/domain"
)

// deleteTimeout bounds how long a cascading delete may run.
const deleteTimeout = 10 * time.Second

// AdminService handles user management operations available to
// administrators only. Role checks happen at the routing layer; these
// methods assume the caller is already authorized.
type AdminService struct {
	users      domain.UserRepository
	pois       domain.PoiRepository
	categories domain.CategoryRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(users domain.UserRepository, pois domain.PoiRepository, categories domain.CategoryRepository) *AdminService {
	return &AdminService{users: users, pois: pois, categories: categories}
}

// ListMembers returns all accounts with role "user", sorted by last name.
func (s *AdminService) ListMembers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return users, nil
}

// UserDetail is everything the admin view needs for a single member.
type UserDetail struct {
	User       *domain.User
	Pois       []domain.PointOfInterest
	Categories []domain.Category
}

// ViewUser returns a member together with their points of interest,
// optionally filtered by category name. An empty filter or "all" lists
// every record.
func (s *AdminService) ViewUser(ctx context.Context, userID int64, categoryFilter string) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var categoryID int64
	if categoryFilter != "" && categoryFilter != "all" {
		category, err := s.categories.GetByName(ctx, categoryFilter)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, categoryFilter)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
		categoryID = category.ID
	}

	pois, err := s.pois.ListByUser(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list pois: %w", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return &UserDetail{User: user, Pois: pois, Categories: categories}, nil
}

// DeleteUser removes a member and cascades to their points of interest
// and attached media. The cascade runs as one transaction, bounded by a
// timeout, and re-invoking it on an already-deleted user returns
// ErrNotFound without side effects.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if err := s.users.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	return nil
}
