package sqlite_test

import (
	"context"
	"testing"

	"github.com/apexgym/members/internal/domain"
	"github.com/apexgym/members/internal/repository/sqlite"
)

func TestCategoryRepository_Create_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewCategoryRepository(db)
	ctx := context.Background()

	first := &domain.Category{Name: "Mountain"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := &domain.Category{Name: "Mountain"}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same category ID, got %d and %d", first.ID, second.ID)
	}

	categories, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
}

func TestPoiRepository_ListByUser_CategoryFilter(t *testing.T) {
	db := newTestDB(t)
	users := sqlite.NewUserRepository(db)
	categories := sqlite.NewCategoryRepository(db)
	pois := sqlite.NewPoiRepository(db)
	ctx := context.Background()

	user := testUser("pois@example.com")
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create user: %v", err)
	}

	beach := &domain.Category{Name: "Beach"}
	city := &domain.Category{Name: "City"}
	for _, c := range []*domain.Category{beach, city} {
		if err := categories.Create(ctx, c); err != nil {
			t.Fatalf("Create category: %v", err)
		}
	}

	for _, p := range []*domain.PointOfInterest{
		{UserID: user.ID, CategoryID: beach.ID, Name: "Dollymount Strand"},
		{UserID: user.ID, CategoryID: beach.ID, Name: "Sandymount"},
		{UserID: user.ID, CategoryID: city.ID, Name: "Phoenix Park"},
	} {
		if err := pois.Create(ctx, p); err != nil {
			t.Fatalf("Create poi: %v", err)
		}
	}

	all, err := pois.ListByUser(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 pois, got %d", len(all))
	}
	for _, p := range all {
		if p.Category == "" {
			t.Fatalf("expected category name to be populated, got %+v", p)
		}
	}

	beaches, err := pois.ListByUser(ctx, user.ID, beach.ID)
	if err != nil {
		t.Fatalf("ListByUser filtered: %v", err)
	}
	if len(beaches) != 2 {
		t.Fatalf("expected 2 beach pois, got %d", len(beaches))
	}
}
