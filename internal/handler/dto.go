package handler

import (
	"time"

	"github.com/apexgym/members/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is
// never serialized.
type UserDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Medical   string `json:"medical"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		DOB:       u.DOB.Format("2006-01-02"),
		Address:   u.Address,
		Telephone: u.Telephone,
		Email:     u.Email,
		Medical:   u.Medical,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// CategoryDTO is the JSON representation of a category.
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toCategoryDTOs(categories []domain.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = CategoryDTO{ID: c.ID, Name: c.Name}
	}
	return dtos
}

// PoiDTO is the JSON representation of a point of interest.
type PoiDTO struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
}

func toPoiDTO(p *domain.PointOfInterest) PoiDTO {
	return PoiDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func toPoiDTOs(pois []domain.PointOfInterest) []PoiDTO {
	dtos := make([]PoiDTO, len(pois))
	for i := range pois {
		dtos[i] = toPoiDTO(&pois[i])
	}
	return dtos
}

// PoiImageDTO is the JSON representation of image metadata.
type PoiImageDTO struct {
	ID          int64  `json:"id"`
	PoiID       int64  `json:"poiId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	CreatedAt   string `json:"createdAt"`
}

func toPoiImageDTO(img *domain.PoiImage) PoiImageDTO {
	return PoiImageDTO{
		ID:          img.ID,
		PoiID:       img.PoiID,
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Size:        img.Size,
		CreatedAt:   img.CreatedAt.Format(time.RFC3339),
	}
}

func toPoiImageDTOs(images []domain.PoiImage) []PoiImageDTO {
	dtos := make([]PoiImageDTO, len(images))
	for i := range images {
		dtos[i] = toPoiImageDTO(&images[i])
	}
	return dtos
}
