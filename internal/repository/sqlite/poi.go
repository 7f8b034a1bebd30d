package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apexgym/members/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using SQLite.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db.SqlDB}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	// Idempotent: re-creating an existing category resolves to its row.
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?) ON CONFLICT(name) DO NOTHING`,
		category.Name,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		existing, err := r.GetByName(ctx, category.Name)
		if err != nil {
			return err
		}
		category.ID = existing.ID
		return nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	category.ID = id
	return nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE name = ?`, name,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query category by name: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// PoiRepository implements domain.PoiRepository using SQLite.
type PoiRepository struct {
	db *sql.DB
}

func NewPoiRepository(db *DB) *PoiRepository {
	return &PoiRepository{db: db.SqlDB}
}

func (r *PoiRepository) Create(ctx context.Context, poi *domain.PointOfInterest) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO pois (user_id, category_id, name, description, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		poi.UserID, poi.CategoryID, poi.Name, poi.Description, now,
	)
	if err != nil {
		return fmt.Errorf("insert poi: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	poi.ID = id
	poi.CreatedAt = now
	return nil
}

func (r *PoiRepository) GetByID(ctx context.Context, id int64) (*domain.PointOfInterest, error) {
	poi := &domain.PointOfInterest{}
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.user_id, p.category_id, p.name, p.description, p.created_at, c.name
		 FROM pois p JOIN categories c ON c.id = p.category_id
		 WHERE p.id = ?`, id,
	).Scan(&poi.ID, &poi.UserID, &poi.CategoryID, &poi.Name, &poi.Description, &poi.CreatedAt, &poi.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query poi by id: %w", err)
	}
	return poi, nil
}

func (r *PoiRepository) ListByUser(ctx context.Context, userID, categoryID int64) ([]domain.PointOfInterest, error) {
	query := `SELECT p.id, p.user_id, p.category_id, p.name, p.description, p.created_at, c.name
	          FROM pois p JOIN categories c ON c.id = p.category_id
	          WHERE p.user_id = ?`
	args := []any{userID}
	if categoryID != 0 {
		query += ` AND p.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY c.name DESC, p.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pois by user: %w", err)
	}
	defer rows.Close()

	var pois []domain.PointOfInterest
	for rows.Next() {
		var p domain.PointOfInterest
		if err := rows.Scan(&p.ID, &p.UserID, &p.CategoryID, &p.Name, &p.Description, &p.CreatedAt, &p.Category); err != nil {
			return nil, fmt.Errorf("scan poi: %w", err)
		}
		pois = append(pois, p)
	}
	return pois, rows.Err()
}

// PoiImageRepository implements domain.PoiImageRepository using SQLite.
type PoiImageRepository struct {
	db *sql.DB
}

func NewPoiImageRepository(db *DB) *PoiImageRepository {
	return &PoiImageRepository{db: db.SqlDB}
}

func (r *PoiImageRepository) Create(ctx context.Context, image *domain.PoiImage) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO poi_images (poi_id, filename, content_type, size, storage_key, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		image.PoiID, image.Filename, image.ContentType, image.Size, image.StorageKey, now,
	)
	if err != nil {
		return fmt.Errorf("insert poi image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	image.ID = id
	image.CreatedAt = now
	return nil
}

func (r *PoiImageRepository) GetByID(ctx context.Context, id int64) (*domain.PoiImage, error) {
	image := &domain.PoiImage{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, poi_id, filename, content_type, size, storage_key, created_at
		 FROM poi_images WHERE id = ?`, id,
	).Scan(&image.ID, &image.PoiID, &image.Filename, &image.ContentType, &image.Size, &image.StorageKey, &image.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query poi image by id: %w", err)
	}
	return image, nil
}

func (r *PoiImageRepository) ListByPoi(ctx context.Context, poiID int64) ([]domain.PoiImage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, poi_id, filename, content_type, size, storage_key, created_at
		 FROM poi_images WHERE poi_id = ? ORDER BY id`, poiID,
	)
	if err != nil {
		return nil, fmt.Errorf("query poi images: %w", err)
	}
	defer rows.Close()

	var images []domain.PoiImage
	for rows.Next() {
		var img domain.PoiImage
		if err := rows.Scan(&img.ID, &img.PoiID, &img.Filename, &img.ContentType, &img.Size, &img.StorageKey, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan poi image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
