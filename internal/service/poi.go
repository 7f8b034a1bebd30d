package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/apexgym/members/internal/domain"
	"github.com/google/uuid"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

// PoiService handles members' points of interest and their attached
// images.
type PoiService struct {
	pois       domain.PoiRepository
	images     domain.PoiImageRepository
	media      domain.MediaStore
	categories domain.CategoryRepository
}

// NewPoiService creates a new PoiService.
func NewPoiService(pois domain.PoiRepository, images domain.PoiImageRepository, media domain.MediaStore, categories domain.CategoryRepository) *PoiService {
	return &PoiService{pois: pois, images: images, media: media, categories: categories}
}

// SeedCategories makes sure the default categories exist (idempotent).
func (s *PoiService) SeedCategories(ctx context.Context) error {
	for _, name := range []string{"Beach", "City", "Forest", "Mountain", "Park"} {
		if err := s.categories.Create(ctx, &domain.Category{Name: name}); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}
	return nil
}

// Create records a point of interest for the given member under an
// existing category.
func (s *PoiService) Create(ctx context.Context, userID int64, name, description, categoryName string) (*domain.PointOfInterest, error) {
	if name == "" || categoryName == "" {
		return nil, fmt.Errorf("%w: name and category are required", domain.ErrInvalidInput)
	}

	category, err := s.categories.GetByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, categoryName)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	poi := &domain.PointOfInterest{
		UserID:      userID,
		CategoryID:  category.ID,
		Name:        name,
		Description: description,
		Category:    category.Name,
	}
	if err := s.pois.Create(ctx, poi); err != nil {
		return nil, fmt.Errorf("create poi: %w", err)
	}
	return poi, nil
}

// ListForUser returns the member's own points of interest.
func (s *PoiService) ListForUser(ctx context.Context, userID int64) ([]domain.PointOfInterest, error) {
	return s.pois.ListByUser(ctx, userID, 0)
}

// AttachImage validates and stores an image for a point of interest owned
// by the given member.
func (s *PoiService) AttachImage(ctx context.Context, userID, poiID int64, filename, contentType string, data []byte) (*domain.PoiImage, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return nil, fmt.Errorf("%w: only JPEG and PNG images are accepted", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: image exceeds 10MB limit", domain.ErrInvalidInput)
	}

	poi, err := s.pois.GetByID(ctx, poiID)
	if err != nil {
		return nil, fmt.Errorf("get poi: %w", err)
	}
	if poi.UserID != userID {
		return nil, domain.ErrForbidden
	}

	key := uuid.NewString()
	if err := s.media.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("save media: %w", err)
	}

	image := &domain.PoiImage{
		PoiID:       poiID,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		StorageKey:  key,
	}
	if err := s.images.Create(ctx, image); err != nil {
		// Best-effort cleanup of the stored bytes.
		s.media.Delete(ctx, key)
		return nil, fmt.Errorf("create image record: %w", err)
	}

	return image, nil
}

// GetImage returns the image bytes and content type. Members may only
// fetch images attached to their own records; admins may fetch any.
func (s *PoiService) GetImage(ctx context.Context, requester *domain.User, imageID int64) ([]byte, string, error) {
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, "", fmt.Errorf("get image: %w", err)
	}

	if requester.Role != domain.RoleAdmin {
		poi, err := s.pois.GetByID(ctx, image.PoiID)
		if err != nil {
			return nil, "", fmt.Errorf("get poi: %w", err)
		}
		if poi.UserID != requester.ID {
			return nil, "", domain.ErrForbidden
		}
	}

	data, err := s.media.Get(ctx, image.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("get media: %w", err)
	}
	return data, image.ContentType, nil
}

// ListImages returns image metadata for a point of interest, subject to
// the same ownership rule as GetImage.
func (s *PoiService) ListImages(ctx context.Context, requester *domain.User, poiID int64) ([]domain.PoiImage, error) {
	poi, err := s.pois.GetByID(ctx, poiID)
	if err != nil {
		return nil, fmt.Errorf("get poi: %w", err)
	}
	if requester.Role != domain.RoleAdmin && poi.UserID != requester.ID {
		return nil, domain.ErrForbidden
	}
	return s.images.ListByPoi(ctx, poiID)
}
