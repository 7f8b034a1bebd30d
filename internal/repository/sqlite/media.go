package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apexgym/members/internal/domain"
)

// mediaStore implements domain.MediaStore using SQLite BLOBs.
type mediaStore struct {
	db *sql.DB
}

func (s *mediaStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO media_blobs (storage_key, data) VALUES (?, ?)",
		key, data,
	)
	if err != nil {
		return fmt.Errorf("save media blob: %w", err)
	}
	return nil
}

func (s *mediaStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM media_blobs WHERE storage_key = ?", key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get media blob: %w", err)
	}
	return data, nil
}

func (s *mediaStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM media_blobs WHERE storage_key = ?", key,
	)
	if err != nil {
		return fmt.Errorf("delete media blob: %w", err)
	}
	return nil
}
