package domain

import (
	"context"
	"time"
)

// Category groups points of interest for filtering.
type Category struct {
	ID   int64
	Name string
}

// PointOfInterest is a location record owned by a member.
type PointOfInterest struct {
	ID          int64
	UserID      int64
	CategoryID  int64
	Name        string
	Description string
	CreatedAt   time.Time

	// Category is the resolved category name, populated by list queries.
	Category string
}

// PoiImage is metadata for an image attached to a point of interest.
// The bytes live in the media store under StorageKey.
type PoiImage struct {
	ID          int64
	PoiID       int64
	Filename    string
	ContentType string
	Size        int64
	StorageKey  string
	CreatedAt   time.Time
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
}

type PoiRepository interface {
	Create(ctx context.Context, poi *PointOfInterest) error
	GetByID(ctx context.Context, id int64) (*PointOfInterest, error)
	// ListByUser returns the user's points of interest ordered by
	// category name descending. categoryID 0 means no filter.
	ListByUser(ctx context.Context, userID, categoryID int64) ([]PointOfInterest, error)
}

type PoiImageRepository interface {
	Create(ctx context.Context, image *PoiImage) error
	GetByID(ctx context.Context, id int64) (*PoiImage, error)
	ListByPoi(ctx context.Context, poiID int64) ([]PoiImage, error)
}

// MediaStore holds raw image bytes keyed by an opaque storage key.
type MediaStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
